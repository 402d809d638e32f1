package logging

import (
	"context"
	"log/slog"

	"tmdbpost/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID carries the per-invocation session identifier.
	FieldCorrelationID = "correlation_id"
	// FieldShowID is the TMDb show being edited.
	FieldShowID = "show_id"
	// FieldSeason is the season number being edited.
	FieldSeason = "season"
	// FieldRecord is the label of the record being reconciled (S02, S02E05).
	FieldRecord = "record"
	// FieldStatus is the feedback status of a reconciled record.
	FieldStatus = "status"
	// FieldURL is the page URL involved in a browser step.
	FieldURL = "url"
	// FieldDecisionType names the kind of reconcile decision being logged.
	FieldDecisionType = "decision_type"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	if show, ok := services.ShowIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldShowID, show))
	}
	if season, ok := services.SeasonFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldSeason, season))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
