package dsl_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonmap "github.com/kyantra/jsonmap"
	"github.com/kyantra/jsonmap/dsl"
)

type level int

const (
	levelLow level = iota + 1
	levelHigh
)

type record struct {
	Initial rune
	Level   level
	Scores  []int
	Unique  []string
	ByDay   map[int]string
	Extra   *jsonmap.OrderedMap[string]
}

func recordDesc() *jsonmap.TypeDescriptor {
	return dsl.Struct[record](
		dsl.Field("Initial", dsl.Char(),
			func(r record) rune { return r.Initial },
			func(r *record, v rune) { r.Initial = v }),
		dsl.Field("Level", dsl.Enum[level](dsl.C("LOW", levelLow), dsl.C("HIGH", levelHigh)),
			func(r record) level { return r.Level },
			func(r *record, v level) { r.Level = v }),
		dsl.Field("Scores", dsl.SliceOf[int](dsl.Int[int]()),
			func(r record) []int { return r.Scores },
			func(r *record, v []int) { r.Scores = v }),
		dsl.Field("Unique", dsl.SetOf[string](dsl.String[string]()),
			func(r record) []string { return r.Unique },
			func(r *record, v []string) { r.Unique = v }),
		dsl.Field("ByDay", dsl.MapOf[int, string](dsl.Int[int](), dsl.String[string]()),
			func(r record) map[int]string { return r.ByDay },
			func(r *record, v map[int]string) { r.ByDay = v }),
		dsl.Field("Extra", dsl.OrderedMapOf[string](dsl.String[string]()),
			func(r record) *jsonmap.OrderedMap[string] { return r.Extra },
			func(r *record, v *jsonmap.OrderedMap[string]) { r.Extra = v }),
	)
}

func recordCtx() *jsonmap.Context {
	return jsonmap.NewContext().WithType(recordDesc()).Build()
}

func TestStruct_RoundTrip(t *testing.T) {
	ctx := recordCtx()
	in := `{"initial":"Q","level":"HIGH","scores":[3,1],"unique":["a","b","a"],` +
		`"by_day":{"2":"tue","1":"mon"},"extra":{"z":"1","a":"2"}}`
	got, err := jsonmap.Decode[record](ctx, []byte(in))
	require.NoError(t, err)

	assert.Equal(t, 'Q', got.Initial)
	assert.Equal(t, levelHigh, got.Level)
	assert.Equal(t, []int{3, 1}, got.Scores)
	// The set dropped the duplicate but kept first-occurrence order.
	assert.Equal(t, []string{"a", "b"}, got.Unique, spew.Sdump(got))
	assert.Equal(t, map[int]string{1: "mon", 2: "tue"}, got.ByDay)
	require.Equal(t, 2, got.Extra.Len())
	k, _ := got.Extra.At(0)
	assert.Equal(t, "z", k, "ordered map must keep wire order")

	text, err := jsonmap.Encode(ctx, got)
	require.NoError(t, err)
	// Plain map keys sort by wire text; ordered map keeps insertion order.
	assert.Equal(t, `{"initial":"Q","level":"HIGH","scores":[3,1],"unique":["a","b"],`+
		`"by_day":{"1":"mon","2":"tue"},"extra":{"z":"1","a":"2"}}`, text)
}

func TestChar_EmptyStringIsNull(t *testing.T) {
	ctx := recordCtx()
	got, err := jsonmap.Decode[record](ctx, []byte(`{"initial":""}`))
	require.NoError(t, err)
	assert.Equal(t, rune(0), got.Initial)
}

func TestEnum_UnknownConstantFails(t *testing.T) {
	ctx := recordCtx()
	_, err := jsonmap.Decode[record](ctx, []byte(`{"level":"MEDIUM"}`))
	require.Error(t, err)
}

func TestEnum_EncodeUnknownValueFails(t *testing.T) {
	ctx := recordCtx()
	_, err := jsonmap.Encode(ctx, record{Level: level(99), Initial: 'a'})
	require.Error(t, err)
}

type audit struct {
	Secret string
	Seen   string
	Both   string
}

func TestFieldDirectionOptions(t *testing.T) {
	desc := dsl.Struct[audit](
		dsl.Field("Secret", dsl.String[string](),
			func(a audit) string { return a.Secret },
			func(a *audit, v string) { a.Secret = v },
			dsl.SkipEncode()),
		dsl.Field("Seen", dsl.String[string](),
			func(a audit) string { return a.Seen },
			func(a *audit, v string) { a.Seen = v },
			dsl.SkipDecode()),
		dsl.Field("Both", dsl.String[string](),
			func(a audit) string { return a.Both },
			func(a *audit, v string) { a.Both = v },
			dsl.Ignore()),
	)
	ctx := jsonmap.NewContext().WithType(desc).Build()

	text, err := jsonmap.Encode(ctx, audit{Secret: "s", Seen: "v", Both: "b"})
	require.NoError(t, err)
	assert.Equal(t, `{"seen":"v"}`, text)

	got, err := jsonmap.Decode[audit](ctx, []byte(`{"secret":"s","seen":"v","both":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, "s", got.Secret)
	assert.Empty(t, got.Seen)
	assert.Empty(t, got.Both)
}

func TestFactory_TriedAfterScalarCtor(t *testing.T) {
	type box struct{ N int }
	desc := dsl.Factory(dsl.Struct[box](
		dsl.Field("N", dsl.Int[int](),
			func(b box) int { return b.N },
			func(b *box, v int) { b.N = v }),
	), func(v any) (box, error) {
		i, _ := v.(int64)
		return box{N: int(i) * 2}, nil
	})
	ctx := jsonmap.NewContext().WithType(desc).Build()
	got, err := jsonmap.Decode[box](ctx, []byte(`21`))
	require.NoError(t, err)
	assert.Equal(t, 42, got.N)
}
