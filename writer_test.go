package jsonmap_test

import (
	"strings"
	"testing"

	jsonmap "github.com/kyantra/jsonmap"
)

func TestWriter_Compact(t *testing.T) {
	var sb strings.Builder
	w := jsonmap.NewWriter(&sb)
	w.BeginObject()
	w.Name("a")
	w.Raw("1")
	w.Separator()
	w.Name("b")
	w.BeginArray()
	w.String("x")
	w.Separator()
	w.Null()
	w.EndArray()
	w.EndObject()
	if err := w.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{"a":1,"b":["x",null]}`
	if sb.String() != want {
		t.Fatalf("got %s, want %s", sb.String(), want)
	}
}

func TestWriter_Pretty(t *testing.T) {
	var sb strings.Builder
	w := jsonmap.NewIndentWriter(&sb, "  ")
	w.BeginObject()
	w.Name("a")
	w.Raw("1")
	w.Separator()
	w.Name("b")
	w.BeginArray()
	w.Raw("2")
	w.Separator()
	w.Raw("3")
	w.EndArray()
	w.EndObject()
	want := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	if sb.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriter_EmptyContainers(t *testing.T) {
	var sb strings.Builder
	w := jsonmap.NewIndentWriter(&sb, "  ")
	w.BeginObject()
	w.Name("a")
	w.BeginArray()
	w.EndArray()
	w.Separator()
	w.Name("b")
	w.BeginObject()
	w.EndObject()
	w.EndObject()
	want := "{\n  \"a\": [\n    \n  ],\n  \"b\": {\n    \n  }\n}"
	if sb.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriter_Escaping(t *testing.T) {
	var sb strings.Builder
	w := jsonmap.NewWriter(&sb)
	w.String("a\"b\\c\nd\x01e")
	want := "\"a\\\"b\\\\c\\nd\\u0001e\""
	if sb.String() != want {
		t.Fatalf("got %s, want %s", sb.String(), want)
	}
}
