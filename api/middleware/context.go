package middleware

import "context"

type callerKey struct{}

// Caller identifies who is driving a request: normally the n8n workflow,
// authenticated with a service token.
type Caller struct {
	Client  string
	TokenID string
	Local   bool
}

// CallerFromContext returns the caller attached by Auth.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// ClientFromContext returns the caller's client name, or "" when
// unauthenticated.
func ClientFromContext(ctx context.Context) string {
	c, _ := CallerFromContext(ctx)
	return c.Client
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey{}, c)
}

// WithClient attaches a caller known only by name.
func WithClient(ctx context.Context, client string) context.Context {
	return WithCaller(ctx, Caller{Client: client})
}
