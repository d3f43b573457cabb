package events

import "go.uber.org/zap"

// LogInvalidator records stale paths in the log only. It stands in for the
// Kafka producer when no brokers are configured.
type LogInvalidator struct {
	logger *zap.Logger
}

func NewLogInvalidator(logger *zap.Logger) *LogInvalidator {
	return &LogInvalidator{logger: logger.Named("invalidator")}
}

func (l *LogInvalidator) Invalidate(path string) {
	l.logger.Info("view path invalidated", zap.String("path", path))
}
