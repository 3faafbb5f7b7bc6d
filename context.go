package jsonmap

import "reflect"

// DefaultTimeLayout is the default encoding for date-like values: ISO-8601
// with milliseconds and a numeric offset.
const DefaultTimeLayout = "2006-01-02T15:04:05.000-0700"

// Context is the immutable-after-build configuration shared by conversion
// calls: null handling, naming strategy, date pattern, indentation, nesting
// limit, and the adapter and type-descriptor registries. A built Context is
// safe for concurrent read-only use, provided registered adapters hold no
// unsynchronized mutable state of their own.
type Context struct {
	serializeNulls bool
	useFieldNames  bool
	timeLayout     string
	indent         string
	pretty         bool
	maxDepth       int
	adapters       map[reflect.Type]*AnyAdapter
	types          map[reflect.Type]*TypeDescriptor
}

// ContextBuilder accumulates configuration; Build produces the read-only
// Context. Registering further adapters requires building a new context.
type ContextBuilder struct {
	ctx Context
}

// NewContext returns a builder seeded with defaults: nulls omitted, snake_case
// naming strategy, DefaultTimeLayout, compact output, DefaultMaxDepth.
func NewContext() *ContextBuilder {
	return &ContextBuilder{ctx: Context{
		timeLayout: DefaultTimeLayout,
		maxDepth:   DefaultMaxDepth,
		adapters:   make(map[reflect.Type]*AnyAdapter),
		types:      make(map[reflect.Type]*TypeDescriptor),
	}}
}

// SerializeNulls toggles emission of null members.
func (b *ContextBuilder) SerializeNulls(on bool) *ContextBuilder {
	b.ctx.serializeNulls = on
	return b
}

// UseFieldNames disables the camelCase-to-snake_case wire-name derivation and
// uses declared field names as-is.
func (b *ContextBuilder) UseFieldNames(on bool) *ContextBuilder {
	b.ctx.useFieldNames = on
	return b
}

// TimeLayout sets the date pattern used for time.Time values without a
// per-field or per-descriptor override.
func (b *ContextBuilder) TimeLayout(layout string) *ContextBuilder {
	b.ctx.timeLayout = layout
	return b
}

// Indent enables pretty printing with the given indentation unit.
func (b *ContextBuilder) Indent(unit string) *ContextBuilder {
	b.ctx.indent = unit
	b.ctx.pretty = true
	return b
}

// Compact disables pretty printing.
func (b *ContextBuilder) Compact() *ContextBuilder {
	b.ctx.indent = ""
	b.ctx.pretty = false
	return b
}

// MaxDepth bounds nesting for both parsing and mapping. Values <= 0 restore
// DefaultMaxDepth.
func (b *ContextBuilder) MaxDepth(n int) *ContextBuilder {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	b.ctx.maxDepth = n
	return b
}

// WithAdapter registers a type-level adapter. Lookup is by exact type
// identity only.
func (b *ContextBuilder) WithAdapter(a AnyAdapter) *ContextBuilder {
	ad := a
	b.ctx.adapters[a.goType] = &ad
	return b
}

// WithType registers a type descriptor so the engine can resolve it for
// top-level decoding and for runtime dispatch during encoding.
func (b *ContextBuilder) WithType(td *TypeDescriptor) *ContextBuilder {
	if td != nil && td.GoType != nil {
		b.ctx.types[td.GoType] = td
	}
	return b
}

// WithTypes registers several descriptors at once.
func (b *ContextBuilder) WithTypes(tds ...*TypeDescriptor) *ContextBuilder {
	for _, td := range tds {
		b.WithType(td)
	}
	return b
}

// Build finalizes the context. The builder must not be reused afterwards.
func (b *ContextBuilder) Build() *Context {
	ctx := b.ctx
	return &ctx
}

// Default returns a context with default configuration and empty registries.
func Default() *Context { return NewContext().Build() }

func (c *Context) adapterFor(t reflect.Type) (*AnyAdapter, bool) {
	a, ok := c.adapters[t]
	return a, ok
}

func (c *Context) typeFor(t reflect.Type) (*TypeDescriptor, bool) {
	if td, ok := c.types[t]; ok {
		return td, true
	}
	return builtinFor(t)
}

func (c *Context) layoutFor(td *TypeDescriptor, fieldLayout string) string {
	if fieldLayout != "" {
		return fieldLayout
	}
	if td != nil && td.TimeLayout != "" {
		return td.TimeLayout
	}
	return c.timeLayout
}
