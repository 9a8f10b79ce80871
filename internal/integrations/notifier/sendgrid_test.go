package notifier

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
)

type fakeClient struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeClient) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, email)
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendGridSender_Send(t *testing.T) {
	client := &fakeClient{status: 202}
	sender := NewSendGridSenderWithClient(client, "office@example.com", "Consulting", logger.NewNop())

	err := sender.Send(context.Background(), Message{
		To:      []string{"ada@example.com", "admin@example.com"},
		Subject: "Reservation confirmed",
		Body:    "See you on Monday",
		Attachments: []Attachment{
			{Filename: "invite.ics", ContentType: ContentTypeCalendar, Content: []byte("BEGIN:VCALENDAR")},
		},
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "office@example.com", msg.From.Address)
	assert.Equal(t, "Reservation confirmed", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	require.Len(t, msg.Personalizations[0].To, 2)
	assert.Equal(t, "admin@example.com", msg.Personalizations[0].To[1].Address)

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "invite.ics", msg.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("BEGIN:VCALENDAR")), msg.Attachments[0].Content)
}

func TestSendGridSender_Errors(t *testing.T) {
	sender := NewSendGridSenderWithClient(&fakeClient{status: 202}, "office@example.com", "Consulting", logger.NewNop())
	assert.ErrorIs(t, sender.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipients)

	sender = NewSendGridSenderWithClient(&fakeClient{status: 401}, "office@example.com", "Consulting", logger.NewNop())
	assert.ErrorIs(t, sender.Send(context.Background(), Message{To: []string{"a@example.com"}}), ErrSend)

	sender = NewSendGridSenderWithClient(&fakeClient{err: errors.New("dial tcp")}, "office@example.com", "Consulting", logger.NewNop())
	assert.ErrorIs(t, sender.Send(context.Background(), Message{To: []string{"a@example.com"}}), ErrSend)
}

func TestStubSender_Send(t *testing.T) {
	stub := NewStubSender(logger.NewNop())
	assert.NoError(t, stub.Send(context.Background(), Message{To: []string{"a@example.com"}}))
	assert.ErrorIs(t, stub.Send(context.Background(), Message{}), ErrNoRecipients)
}
