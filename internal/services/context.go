package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	showIDKey    contextKey = "show_id"
	seasonKey    contextKey = "season"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithShowID annotates context with the TMDb show being edited.
func WithShowID(ctx context.Context, showID string) context.Context {
	if showID == "" {
		return ctx
	}
	return context.WithValue(ctx, showIDKey, showID)
}

// ShowIDFromContext returns the show id if present.
func ShowIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(showIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSeason annotates context with the season number being edited.
func WithSeason(ctx context.Context, season int) context.Context {
	return context.WithValue(ctx, seasonKey, season)
}

// SeasonFromContext returns the season number if present.
func SeasonFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(seasonKey).(int)
	return v, ok
}
