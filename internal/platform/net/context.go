// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyOperator ctxKey = "operator"

// WithRequest annotates context with the request id and the authenticated operator
func WithRequest(ctx context.Context, reqID, operator string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if operator != "" {
		ctx = context.WithValue(ctx, keyOperator, operator)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Operator returns the operator that passed the write guard, empty when unguarded
func Operator(ctx context.Context) string {
	if v, ok := ctx.Value(keyOperator).(string); ok {
		return v
	}
	return ""
}
