// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	perr "textprep/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc is the shared validator with its English translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the shared validator, building it on first use. Messages use
// json field names
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "":
				return f.Name
			case "-":
				return ""
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.IndexFunc(fl.Field().String(), func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
		})
		translate(v, trans, "nonblank", "{0} must contain non-whitespace text")
		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Validate checks v's validate tags and returns a Validation error naming
// the first offending field
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(Get().Translator)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
}

// JSONOptions tunes ParseJSON
type JSONOptions struct {
	MaxBytes       int64 // 0 means 1 MiB; negative means no limit
	AllowUnknown   bool
	AllowEmptyBody bool
}

// DefaultMaxBytes caps bodies when JSONOptions.MaxBytes is zero
const DefaultMaxBytes = 1 << 20

// ParseJSON decodes exactly one JSON value into T and validates it. Oversized
// bodies give TooLarge, malformed ones JSON, invalid ones Validation
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var o JSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	limit := o.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}

	var dst T
	body := r.Body
	if body == nil {
		body = http.NoBody
	}
	defer func() { _ = body.Close() }()
	if limit > 0 {
		body = http.MaxBytesReader(nil, body, limit)
	}

	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return dst, perr.TooLargef("request body exceeds %d bytes", tooBig.Limit)
		case errors.Is(err, io.EOF) && o.AllowEmptyBody:
			return dst, nil
		case errors.Is(err, io.EOF):
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return dst, err
	}
	return dst, nil
}
