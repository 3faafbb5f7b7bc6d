package jsonmap_test

import (
	"testing"

	jsonmap "github.com/kyantra/jsonmap"
)

func TestNaming_CamelToSnake(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"name":      "name",
		"userName":  "user_name",
		"URLValue":  "u_r_l_value",
		"createdAt": "created_at",
		"ID":        "i_d",
	}
	for in, want := range cases {
		if got := jsonmap.CamelToSnake(in); got != want {
			t.Fatalf("CamelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNaming_SnakeToCamel(t *testing.T) {
	cases := map[string]string{
		"user_name":  "userName",
		"created_at": "createdAt",
		"name":       "name",
	}
	for in, want := range cases {
		if got := jsonmap.SnakeToCamel(in); got != want {
			t.Fatalf("SnakeToCamel(%q) = %q, want %q", in, got, want)
		}
	}
}
