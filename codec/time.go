// Package codec provides ready-made adapters for common wire formats: date
// patterns, UUIDs and URLs. Each constructor returns a type-erased adapter
// suitable for Context.WithAdapter or a field-level override.
package codec

import (
	"fmt"
	"time"

	jm "github.com/kyantra/jsonmap"
)

// Time returns an adapter converting time.Time through the given layout.
// Registering it overrides the engine's built-in date handling for every
// time.Time in the context.
func Time(layout string) jm.AnyAdapter {
	return jm.AdapterFor[time.Time](timeAdapter{layout: layout})
}

type timeAdapter struct {
	layout string
}

func (a timeAdapter) Encode(t time.Time) (any, error) {
	return t.Format(a.layout), nil
}

func (a timeAdapter) Decode(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected string, got %T", v)
	}
	return time.Parse(a.layout, s)
}
