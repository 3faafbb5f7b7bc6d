package codec

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	jm "github.com/kyantra/jsonmap"
)

// UUID returns an adapter for uuid.UUID values. Encoding always emits the
// canonical lowercase hyphenated form. Decoding is lenient: surrounding
// whitespace and one pair of quotes or braces are tolerated, hyphens may be
// missing, and hex case is ignored.
func UUID() jm.AnyAdapter {
	return jm.AdapterFor[uuid.UUID](uuidAdapter{})
}

type uuidAdapter struct{}

func (uuidAdapter) Encode(u uuid.UUID) (any, error) {
	return u.String(), nil
}

func (uuidAdapter) Decode(v any) (uuid.UUID, error) {
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("expected string, got %T", v)
	}
	return uuid.Parse(normalizeUUID(s))
}

// normalizeUUID strips the tolerated decorations so uuid.Parse sees one of
// its accepted shapes.
func normalizeUUID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
