package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// LogSink writes audit events to the structured log. It backs local
// development and acts as the fallback when no broker is configured.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-backed audit sink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit implements Sink
func (s *LogSink) Emit(_ context.Context, event *domain.AuditEvent) error {
	s.logger.Info("audit event",
		zap.String("id", event.ID),
		zap.String("action", string(event.Action)),
		zap.Uint("tenant_id", event.TenantID),
		zap.Uint("user_id", event.UserID),
		zap.String("phone", event.Phone),
		zap.Bool("success", event.Success),
		zap.String("reason", event.Reason),
		zap.Time("timestamp", event.Timestamp),
	)
	return nil
}
