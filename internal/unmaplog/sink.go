package unmaplog

import (
	"github.com/retroenv/retrogolib/log"
)

// Sink receives the reports that pass the throttle.
type Sink interface {
	Unmapped(access Access)
	Summary(summary Summary)
}

// LoggerSink writes reports to a logger.
type LoggerSink struct {
	logger *log.Logger
}

// NewLoggerSink returns a sink writing to logger.
func NewLoggerSink(logger *log.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Unmapped logs a single unmapped access as a warning.
func (s *LoggerSink) Unmapped(access Access) {
	s.logger.Warn(access.String(),
		log.String("access", access.Kind()),
		log.Hex("offset", access.Offset),
		log.Int("width", access.Width),
	)
}

// Summary logs the accesses that were not reported individually.
func (s *LoggerSink) Summary(summary Summary) {
	s.logger.Warn("Unmapped memory accesses not reported individually",
		log.String("space", summary.Space),
		log.Int("repeated", int(summary.Repeated)),
		log.Int("suppressed", int(summary.Suppressed)),
	)
}
