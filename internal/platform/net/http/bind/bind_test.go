package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	perr "ballotbox/internal/platform/errors"
)

type rowsBody struct {
	Rows     []map[string]any `json:"rows" validate:"required"`
	Sheet    string           `json:"sheet" validate:"omitempty,max=5"`
	Date1904 bool             `json:"date1904,omitempty"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/rows", strings.NewReader(body))
}

func TestJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		limit int64
		code  perr.ErrorCode
		field string
	}{
		{name: "ok", body: `{"rows":[{"Nama":"John"}],"date1904":true}`},
		{name: "ok under limit", body: `{"rows":[]}`, limit: 64},
		{name: "empty body", body: ``, code: perr.ErrorCodeJSON},
		{name: "broken json", body: `{"rows":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"rows":[],"extra":1}`, code: perr.ErrorCodeJSON},
		{name: "trailing data", body: `{"rows":[]} {"rows":[]}`, code: perr.ErrorCodeJSON},
		{name: "required", body: `{}`, code: perr.ErrorCodeValidation, field: "rows"},
		{name: "short max message", body: `{"rows":[],"sheet":"Sheet1234"}`, code: perr.ErrorCodeValidation, field: "sheet"},
		{name: "over limit", body: `{"rows":[{"Nama":"John Doe"}]}`, limit: 8, code: perr.ErrorCodeTooLarge},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := JSON[rowsBody](post(tc.body), tc.limit)
			if tc.code == 0 {
				if err != nil {
					t.Fatalf("unexpected %v", err)
				}
				if got.Rows == nil {
					t.Fatalf("rows not decoded: %+v", got)
				}
				return
			}
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code %v want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if tc.field != "" {
				e, _ := perr.As(err)
				if e.Field() != tc.field {
					t.Fatalf("field %q want %q", e.Field(), tc.field)
				}
			}
		})
	}
}

func TestJSON_MaxMessage(t *testing.T) {
	_, err := JSON[rowsBody](post(`{"rows":[],"sheet":"Sheet1234"}`), 0)
	if err == nil || !strings.Contains(err.Error(), "sheet must be at most 5") {
		t.Fatalf("message: %v", err)
	}
}

func TestTooLarge(t *testing.T) {
	if !TooLarge(&http.MaxBytesError{Limit: 1}) {
		t.Fatalf("MaxBytesError not detected")
	}
	if !TooLarge(errors.New("multipart: NextPart: http: request body too large")) {
		t.Fatalf("flattened error not detected")
	}
	if TooLarge(nil) || TooLarge(errors.New("eof")) {
		t.Fatalf("false positive")
	}
}

func TestFieldName(t *testing.T) {
	type tagged struct {
		A string `json:"a,omitempty"`
		B int    `query:"page_size"`
		C bool   `json:"-"`
		D string
	}
	want := []string{"a", "page_size", "C", "D"}
	rt := reflect.TypeOf(tagged{})
	for i, w := range want {
		if got := fieldName(rt.Field(i)); got != w {
			t.Fatalf("field %d: %q want %q", i, got, w)
		}
	}
}
