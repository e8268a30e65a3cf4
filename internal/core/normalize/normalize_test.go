package normalize

import (
	"testing"
)

func TestCollapse_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "empty", in: "", out: ""},
		{name: "identity", in: "привіт світ", out: "привіт світ"},
		{name: "runs", in: "a\t\tb\nc   d", out: "a b c d"},
		{name: "edges", in: " \t a \n b   c \r\n ", out: "a b c"},
		{name: "nbsp and thin space", in: "15\u00a0%\u2009ріст", out: "15 % ріст"},
		{name: "blank", in: " \n\t ", out: ""},
		{name: "line separator", in: "a\u2028b", out: "a b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Collapse(tc.in)
			if got != tc.out {
				t.Fatalf("Collapse(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// Idempotence check: collapse again should be identical
			if again := Collapse(got); again != got {
				t.Fatalf("Collapse not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "clean passthrough", in: "Київ\tі\nЛьвів", out: "Київ\tі\nЛьвів"},
		{name: "nul and controls", in: "a\x00b\x01c\x7fd", out: "abcd"},
		{name: "vertical tab and form feed", in: "a\vb\fc", out: "a b c"},
		{name: "invalid utf8", in: string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}), out: "foo bar"},
		{name: "c1 control", in: "x\u0085y", out: "xy"},
		{name: "invisible format runes", in: "ін\u00adфор\u200bмація\ufeff", out: "інформація"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.out {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("") || !IsBlank("  \n") {
		t.Fatalf("blank strings not detected")
	}
	if IsBlank(" x ") {
		t.Fatalf("non-blank detected as blank")
	}
}
