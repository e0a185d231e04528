package mail

import (
	"context"

	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

var _ model.Mailer = (*Log)(nil)

// Log writes messages to the application log instead of sending them.
// Development only: it prints verification codes.
type Log struct {
	logger *logger.Logger
}

func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(_ context.Context, msg model.Message) error {
	l.logger.Info("Mail: message not sent, logging instead",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
