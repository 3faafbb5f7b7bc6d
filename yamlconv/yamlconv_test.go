package yamlconv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonmap "github.com/kyantra/jsonmap"
	"github.com/kyantra/jsonmap/dsl"
	"github.com/kyantra/jsonmap/yamlconv"
)

func TestParse_MappingOrderAndTypes(t *testing.T) {
	v, err := yamlconv.Parse([]byte(`
zeta: 1
alpha: true
pi: 3.14
none: null
text: "hello"
hex: 0x1F
list:
  - a
  - 2
`))
	require.NoError(t, err)
	obj := v.ObjectVal()

	assert.Equal(t, []string{"zeta", "alpha", "pi", "none", "text", "hex", "list"}, obj.Keys())

	zeta, _ := obj.Get("zeta")
	assert.Equal(t, jsonmap.KindInt, zeta.Kind())
	alpha, _ := obj.Get("alpha")
	assert.True(t, alpha.BoolVal())
	pi, _ := obj.Get("pi")
	assert.Equal(t, 3.14, pi.FloatVal())
	none, _ := obj.Get("none")
	assert.True(t, none.IsNull())
	hex, _ := obj.Get("hex")
	assert.Equal(t, int64(31), hex.IntVal())
	list, _ := obj.Get("list")
	require.Equal(t, jsonmap.KindArray, list.Kind())
	assert.Equal(t, "a", list.Items()[0].StringVal())
	assert.Equal(t, int64(2), list.Items()[1].IntVal())
}

func TestParse_Anchors(t *testing.T) {
	v, err := yamlconv.Parse([]byte(`
base: &b
  x: 1
copy: *b
`))
	require.NoError(t, err)
	cp, ok := v.ObjectVal().Get("copy")
	require.True(t, ok)
	x, _ := cp.ObjectVal().Get("x")
	assert.Equal(t, int64(1), x.IntVal())
}

func TestParseAll_MultiDocument(t *testing.T) {
	docs, err := yamlconv.ParseAll([]byte("a: 1\n---\nb: 2\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	b, _ := docs[1].ObjectVal().Get("b")
	assert.Equal(t, int64(2), b.IntVal())
}

func TestParse_InfinityRejected(t *testing.T) {
	_, err := yamlconv.Parse([]byte("x: .inf\n"))
	require.Error(t, err)
}

type service struct {
	Name     string
	Replicas int
}

func TestDecode_IntoStruct(t *testing.T) {
	desc := dsl.Struct[service](
		dsl.Field("Name", dsl.String[string](),
			func(s service) string { return s.Name },
			func(s *service, v string) { s.Name = v }),
		dsl.Field("Replicas", dsl.Int[int](),
			func(s service) int { return s.Replicas },
			func(s *service, v int) { s.Replicas = v }),
	)
	ctx := jsonmap.NewContext().WithType(desc).Build()
	got, err := yamlconv.Decode[service](ctx, []byte("name: api\nreplicas: \"3\"\n"))
	require.NoError(t, err)
	assert.Equal(t, service{Name: "api", Replicas: 3}, got)
}

func TestParse_EmptyDocument(t *testing.T) {
	v, err := yamlconv.Parse(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}
