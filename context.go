package goUX

import "context"

type visitorIDContextKey struct{}

// WithVisitorID attaches a visitor identifier to ctx. When
// TabState.ScopeByVisitor is set, the Engine keeps one active tab per visitor.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDContextKey{}, visitorID)
}

// VisitorIDFromContext returns the visitor id set by WithVisitorID.
func VisitorIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	visitorID, _ := ctx.Value(visitorIDContextKey{}).(string)
	if visitorID == "" {
		return "", false
	}

	return visitorID, true
}
