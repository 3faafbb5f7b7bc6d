package codec

import (
	"fmt"
	"net/url"

	jm "github.com/kyantra/jsonmap"
)

// URL returns an adapter for *url.URL values, converting through the URL's
// string form.
func URL() jm.AnyAdapter {
	return jm.AdapterFor[*url.URL](urlAdapter{})
}

type urlAdapter struct{}

func (urlAdapter) Encode(u *url.URL) (any, error) {
	if u == nil {
		return nil, fmt.Errorf("nil URL")
	}
	return u.String(), nil
}

func (urlAdapter) Decode(v any) (*url.URL, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	return url.Parse(s)
}
