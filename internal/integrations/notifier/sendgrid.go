package notifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender отправка писем через SendGrid API
type SendGridSender struct {
	client    SendGridClient
	fromEmail string
	fromName  string
	log       Logger
}

// NewSendGridSender создает отправителя с API-ключом
func NewSendGridSender(apiKey, fromEmail, fromName string, log Logger) *SendGridSender {
	return NewSendGridSenderWithClient(sendgrid.NewSendClient(apiKey), fromEmail, fromName, log)
}

// NewSendGridSenderWithClient создает отправителя поверх готового клиента
func NewSendGridSenderWithClient(client SendGridClient, fromEmail, fromName string, log Logger) *SendGridSender {
	return &SendGridSender{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// Send отправляет письмо всем получателям одной персонализацией
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	message, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.log.Error("SendGrid: send failed to=%s: %v", strings.Join(msg.To, ","), err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if resp.StatusCode >= 400 {
		s.log.Error("SendGrid: status %d to=%s: %s", resp.StatusCode, strings.Join(msg.To, ","), resp.Body)
		return fmt.Errorf("%w: sendgrid returned status %d", ErrSend, resp.StatusCode)
	}

	s.log.Info("SendGrid: email sent to=%s subject=%q", strings.Join(msg.To, ","), msg.Subject)
	return nil
}

func (s *SendGridSender) buildMessage(msg Message) (*mail.SGMailV3, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail("", msg.To[0]), msg.Body, html)

	for _, to := range msg.To[1:] {
		message.Personalizations[0].AddTos(mail.NewEmail("", to))
	}

	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetFilename(a.Filename)
		att.SetType(a.ContentType)
		att.SetDisposition("attachment")
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		message.AddAttachment(att)
	}

	return message, nil
}
