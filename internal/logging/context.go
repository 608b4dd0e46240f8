package logging

import (
	"context"
	"log/slog"

	"github.com/jamesohortle/japanese-utilities/internal/services"
)

// contextFields lists the context values copied onto loggers, in output order.
var contextFields = []struct {
	key     string
	extract func(context.Context) (string, bool)
}{
	{FieldRunID, services.RunIDFromContext},
	{FieldWorkID, services.WorkIDFromContext},
	{FieldStage, services.StageFromContext},
}

// ContextFields returns the run, work and stage identifiers carried by ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	for _, f := range contextFields {
		if value, ok := f.extract(ctx); ok {
			fields = append(fields, slog.String(f.key, value))
		}
	}
	return fields
}

// WithContext returns logger tagged with the identifiers carried by ctx.
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
