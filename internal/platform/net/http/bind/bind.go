// Package bind decodes request payloads and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "ballotbox/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var validatorOnce = sync.OnceValue(func() *checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// short bound messages, the defaults talk about "characters" and "items"
	for tag, text := range map[string]string{
		"min": "{0} must be at least {1}",
		"max": "{0} must be at most {1}",
	} {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &checker{v: v, trans: trans}
})

// fieldName names fields by their json, then query tag
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Validate runs struct validation and returns a field tagged validation error
func Validate(v any) error {
	c := validatorOnce()
	err := c.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(c.trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeJSON, "validation error")
}

// JSON decodes a single JSON object into T and validates it
// unknown fields, trailing data and an empty body are rejected
// a limit above zero caps the body and fails with TooLarge past it
func JSON[T any](r *http.Request, limit int64) (T, error) {
	var zero, dst T
	body := r.Body
	if limit > 0 {
		body = http.MaxBytesReader(nil, r.Body, limit)
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		switch {
		case TooLarge(err):
			return zero, perr.TooLargef("request body exceeds %d bytes", limit)
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if TooLarge(err) {
			return zero, perr.TooLargef("request body exceeds %d bytes", limit)
		}
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// TooLarge reports whether err came from an http.MaxBytesReader limit
func TooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart parsing flattens the reader error on some paths
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
