package notifier

import (
	"context"
	"strings"
)

// StubSender пишет письма в лог вместо отправки (уведомления выключены)
type StubSender struct {
	log Logger
}

// NewStubSender создает заглушку
func NewStubSender(log Logger) *StubSender {
	return &StubSender{log: log}
}

// Send логирует письмо
func (s *StubSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	s.log.Info("Notifier stub: would send email to=%s subject=%q attachments=%d",
		strings.Join(msg.To, ","), msg.Subject, len(msg.Attachments))
	return nil
}
