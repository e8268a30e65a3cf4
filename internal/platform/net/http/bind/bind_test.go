package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "textprep/internal/platform/errors"
)

type docIn struct {
	Text    string `json:"text" validate:"nonblank,max=20"`
	Locale  string `json:"locale,omitempty" validate:"omitempty,alpha,min=2,max=8"`
	Persist bool   `json:"persist"`
}

type batchIn struct {
	Items []string `json:"items" validate:"required,min=1,max=3"`
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{name: "ok", body: `{"text":"Привіт. Світ.","locale":"uk"}`},
		{name: "blank text", body: `{"text":"  \n "}`, code: perr.ErrorCodeValidation, field: "text", msg: "text must contain non-whitespace text"},
		{name: "too long", body: `{"text":"` + strings.Repeat("а", 21) + `"}`, code: perr.ErrorCodeValidation, field: "text", msg: "text must be at most 20"},
		{name: "bad locale", body: `{"text":"x","locale":"u1"}`, code: perr.ErrorCodeValidation, field: "locale"},
		{name: "malformed", body: `{"text":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"text":"x","extra":1}`, code: perr.ErrorCodeJSON},
		{name: "trailing", body: `{"text":"x"} {"text":"y"}`, code: perr.ErrorCodeJSON},
		{name: "empty", body: ``, code: perr.ErrorCodeJSON},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			got, err := ParseJSON[docIn](req)
			if tc.code == 0 {
				if err != nil || got.Text != "Привіт. Світ." || got.Locale != "uk" {
					t.Fatalf("got %+v, %v", got, err)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != tc.code {
				t.Fatalf("err = %v, want code %v", err, tc.code)
			}
			if e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
			if tc.msg != "" && e.ToWire().Message != tc.msg {
				t.Fatalf("message = %q, want %q", e.ToWire().Message, tc.msg)
			}
		})
	}
}

func TestParseJSON_Options(t *testing.T) {
	big := `{"text":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	if _, err := ParseJSON[docIn](req, JSONOptions{MaxBytes: 16}); !perr.IsCode(err, perr.ErrorCodeTooLarge) {
		t.Fatalf("oversized err = %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	type optional struct {
		Note string `json:"note"`
	}
	if got, err := ParseJSON[optional](req, JSONOptions{AllowEmptyBody: true}); err != nil || got.Note != "" {
		t.Fatalf("empty allowed: %+v %v", got, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"x","extra":true}`))
	if _, err := ParseJSON[docIn](req, JSONOptions{AllowUnknown: true}); err != nil {
		t.Fatalf("unknown allowed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		field string
	}{
		{"ok", batchIn{Items: []string{"a"}}, ""},
		{"missing", batchIn{}, "items"},
		{"too many", batchIn{Items: []string{"a", "b", "c", "d"}}, "items"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected %v", err)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != tc.field {
				t.Fatalf("err = %v", err)
			}
		})
	}

	if err := Validate(42); !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("non-struct err = %v", err)
	}
}
