package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "ballotbox/internal/platform/errors"
)

// Query fills T from the URL query using `query` struct tags, then validates it
// supported field kinds are string, bool and the int family; absent keys keep the zero value
func Query[T any](r *http.Request) (T, error) {
	var zero, dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Newf(perr.ErrorCodeUnknown, "bind: query target %T is not a struct", dst)
	}

	vals := r.URL.Query()
	for _, f := range reflect.VisibleFields(rv.Type()) {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		raw := strings.TrimSpace(vals.Get(name))
		if !f.IsExported() || f.Anonymous || name == "" || name == "-" || raw == "" {
			continue
		}
		if err := setField(rv.FieldByIndex(f.Index), raw); err != nil {
			return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be %s", name, kindWord(f.Type.Kind())), name)
		}
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func setField(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	default:
		return perr.Newf(perr.ErrorCodeUnknown, "bind: unsupported query field kind %s", fv.Kind())
	}
	return nil
}

func kindWord(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "text"
	default:
		return "an integer"
	}
}
