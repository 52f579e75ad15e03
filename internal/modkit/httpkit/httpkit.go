// Package httpkit is the handler and routing surface modules build on
// modules import it instead of the platform http package
package httpkit

import (
	"net/http"

	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/net/http/bind"
)

type (
	// Envelope is the body every endpoint writes
	Envelope = phttp.Envelope

	// Response is what return-style handlers produce
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform routing seam
	Router = phttp.Router
)

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Error returns a response that maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a value-or-error handler; a returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts fn under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// Post mounts fn under POST, fn reads its own body
func Post(r Router, path string, fn func(*http.Request) (any, error)) { r.Post(path, Call(fn)) }

// Delete mounts fn under DELETE
func Delete(r Router, path string, fn func(*http.Request) (any, error)) { r.Delete(path, Call(fn)) }

// URLParam returns the unescaped route parameter key
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Query parses and validates query parameters into T using `query` tags
func Query[T any](r *http.Request) (T, error) { return bind.Query[T](r) }

// BodyLimit decodes and validates a JSON body of at most maxBytes into T
func BodyLimit[T any](r *http.Request, maxBytes int64) (T, error) { return bind.JSON[T](r, maxBytes) }

// TooLarge reports whether err came from a body size limit
func TooLarge(err error) bool { return bind.TooLarge(err) }
