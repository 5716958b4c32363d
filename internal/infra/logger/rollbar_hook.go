package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/sirupsen/logrus"
)

// RollbarHook forwards error-and-above log entries to Rollbar. Structured
// fields ride along as custom data; the log line itself stays on stdout.
type RollbarHook struct{}

var _ logrus.Hook = (*RollbarHook)(nil)

func NewRollbarHook(token, environment string) *RollbarHook {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	return &RollbarHook{}
}

func (h *RollbarHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}
}

func (h *RollbarHook) Fire(entry *logrus.Entry) error {
	custom := map[string]interface{}(entry.Data)

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		rollbar.Critical(entry.Message, custom)
	default:
		rollbar.Error(entry.Message, custom)
	}
	return nil
}
