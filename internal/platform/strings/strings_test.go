package strings

import (
	"reflect"
	"testing"

	kit "textprep/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("nil -> %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); !reflect.DeepEqual(got, []string{"POST"}) {
		t.Fatalf("set -> %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("documents", "name") != "documents" {
		t.Fatal("value changed")
	}
	kit.MustPanic(t, func() { MustString(" \t", "name") })
}

func TestMustPrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"documents", "/documents"},
		{"/meta/", "/meta"},
		{"  //api/v1// ", "/api/v1"},
	}
	for _, tc := range tests {
		if got := MustPrefix(tc.in); got != tc.want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "/", "  // "} {
		kit.MustPanic(t, func() { MustPrefix(bad) })
	}
}

func TestNullIfBlank(t *testing.T) {
	if NullIfBlank("  ") != nil {
		t.Fatal("blank should be nil")
	}
	if NullIfBlank("cli") != "cli" {
		t.Fatal("value changed")
	}
}
