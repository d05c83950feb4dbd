package service

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"mailtrack/pkg/logger"
	"mailtrack/pkg/metrics"
	"mailtrack/pkg/otel"
)

// FailureSink is the best-effort error policy for the tracking
// endpoint: every captured error is reported on an error span, logged
// and counted, then dropped. Callers of Capture never see the error
// again; the endpoint answers with its generic success body no matter
// what happened underneath. Auth failures are handled before this
// policy applies and are the only ones surfaced to clients.
type FailureSink struct {
	log *zap.Logger
}

func NewFailureSink(log *zap.Logger) *FailureSink {
	return &FailureSink{log: log}
}

// Capture reports err against op and swallows it.
func (s *FailureSink) Capture(ctx context.Context, op string, err error) {
	_, span := otel.StartSpan(ctx, op)
	defer span.End()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	metrics.SwallowedErrorCount.WithLabelValues(op).Inc()

	logger.WithTrace(ctx, s.log).Error("captured tracking failure",
		zap.String("op", op),
		zap.Error(err),
	)
}
