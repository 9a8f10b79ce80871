package notifier

import "errors"

var (
	// ErrNoRecipients возвращается, когда у письма нет получателей
	ErrNoRecipients = errors.New("notifier: message has no recipients")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("notifier: failed to send message")
)
