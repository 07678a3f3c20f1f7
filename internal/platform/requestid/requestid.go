// Package requestid carries a per-request correlation ID through context so
// that audit log lines can be tied back to the API call that produced them.
package requestid

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the correlation ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation ID in ctx, or an empty string when the
// caller carries none (CLI audits, background work).
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
