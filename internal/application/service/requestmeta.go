package service

import "context"

type metaKey string

const userAgentKey metaKey = "user_agent"

// WithUserAgent attaches the caller's user agent to the context so audit
// entries written deep in a transition can carry it.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// userAgentFrom retrieves the user agent attached by WithUserAgent, if any.
func userAgentFrom(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey).(string); ok {
		return ua
	}
	return ""
}
