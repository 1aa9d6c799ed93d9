package logger

import (
	"fmt"
	"time"

	"vibelog/src/internal/core"
)

// Metric records a named measurement as an INFO entry under the "metric"
// operation, with the measurement carried in context.
func (l *Logger) Metric(name string, value float64, unit string, opts ...EmitOption) core.LogEntry {
	opts = append(opts, WithContext(map[string]any{
		"metric": name,
		"value":  value,
		"unit":   unit,
	}))
	return l.Info("metric", fmt.Sprintf("%s=%v %s", name, value, unit), opts...)
}

// Performance records how long an operation took.
func (l *Logger) Performance(operation string, d time.Duration, opts ...EmitOption) core.LogEntry {
	opts = append(opts, WithContext(map[string]any{
		"duration_ms": float64(d) / float64(time.Millisecond),
	}))
	return l.Info(operation, "Operation completed", opts...)
}

// StartOperation logs the start of a named operation and returns a finish
// function that logs its completion with the elapsed time. Typical use:
//
//	defer logger.StartOperation("fetch_user")()
func (l *Logger) StartOperation(operation string, opts ...EmitOption) func() {
	l.Info(operation, "Operation started", opts...)
	start := time.Now()
	return func() {
		l.Performance(operation, time.Since(start), opts...)
	}
}
