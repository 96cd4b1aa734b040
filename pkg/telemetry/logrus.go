// Package telemetry provides structured-log backed recorders for dashboard
// events.
package telemetry

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Recorder writes dashboard events as structured log entries. It satisfies
// both the dashboard and commands Telemetry interfaces.
type Recorder struct {
	logger *logrus.Logger
	level  logrus.Level
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithLogger replaces the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLevel changes the level events are logged at.
func WithLevel(level logrus.Level) Option {
	return func(r *Recorder) {
		r.level = level
	}
}

// NewRecorder builds a Recorder logging at info level by default.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		logger: logrus.StandardLogger(),
		level:  logrus.InfoLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record logs one event with its payload as structured fields.
func (r *Recorder) Record(ctx context.Context, event string, payload map[string]any) {
	fields := make(logrus.Fields, len(payload))
	for key, value := range payload {
		fields[key] = value
	}
	r.logger.WithContext(ctx).WithFields(fields).Log(r.level, event)
}
