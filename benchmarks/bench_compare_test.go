package benchmarks_test

import (
	"encoding/json"
	"testing"

	gojson "github.com/goccy/go-json"

	jsonmap "github.com/kyantra/jsonmap"
	"github.com/kyantra/jsonmap/dsl"
)

type benchUser struct {
	ID     string
	Name   string
	Age    int
	Active bool
	Tags   []string
}

var benchUserDesc = dsl.Struct[benchUser](
	dsl.Field("ID", dsl.String[string](),
		func(u benchUser) string { return u.ID },
		func(u *benchUser, v string) { u.ID = v },
		dsl.Name("id")),
	dsl.Field("Name", dsl.String[string](),
		func(u benchUser) string { return u.Name },
		func(u *benchUser, v string) { u.Name = v }),
	dsl.Field("Age", dsl.Int[int](),
		func(u benchUser) int { return u.Age },
		func(u *benchUser, v int) { u.Age = v }),
	dsl.Field("Active", dsl.Bool[bool](),
		func(u benchUser) bool { return u.Active },
		func(u *benchUser, v bool) { u.Active = v }),
	dsl.Field("Tags", dsl.SliceOf[string](dsl.String[string]()),
		func(u benchUser) []string { return u.Tags },
		func(u *benchUser, v []string) { u.Tags = v }),
)

var benchCtx = jsonmap.NewContext().WithType(benchUserDesc).Build()

func benchUserJSON() []byte {
	return []byte(`{"id":"u-1","name":"Alice","age":34,"active":true,"tags":["a","b","c"]}`)
}

func Benchmark_Decode_User_jsonmap(b *testing.B) {
	data := benchUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmap.Decode[benchUser](benchCtx, data); err != nil {
			b.Fatal(err)
		}
	}
}

type stdUser struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Age    int      `json:"age"`
	Active bool     `json:"active"`
	Tags   []string `json:"tags"`
}

func Benchmark_Decode_User_encoding_json(b *testing.B) {
	data := benchUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u stdUser
		if err := json.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_User_goccy(b *testing.B) {
	data := benchUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u stdUser
		if err := gojson.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Encode_User_jsonmap(b *testing.B) {
	u := benchUser{ID: "u-1", Name: "Alice", Age: 34, Active: true, Tags: []string{"a", "b", "c"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmap.Encode(benchCtx, u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Encode_User_encoding_json(b *testing.B) {
	u := stdUser{ID: "u-1", Name: "Alice", Age: 34, Active: true, Tags: []string{"a", "b", "c"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Dynamic_jsonmap(b *testing.B) {
	data := benchUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmap.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Dynamic_goccy(b *testing.B) {
	data := benchUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v any
		if err := gojson.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}
