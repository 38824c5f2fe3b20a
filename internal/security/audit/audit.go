package audit

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// Sink — приёмник событий безопасности. Отправка fire-and-forget:
// сбой журналирования никогда не блокирует решение по операции
type Sink interface {
	Emit(event model.SecurityEvent)
}

// LogSink пишет события структурированными записями logrus
type LogSink struct {
	log *logrus.Logger
}

func NewLogSink(log *logrus.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Emit(e model.SecurityEvent) {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	s.log.WithFields(logrus.Fields{
		"subject":    e.Subject,
		"event_type": e.EventType,
		"timestamp":  ts.Format(time.RFC3339Nano),
	}).Warn(e.Description)
}
