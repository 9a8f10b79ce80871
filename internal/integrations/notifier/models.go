package notifier

// Message письмо для отправки
type Message struct {
	To          []string
	Subject     string
	Body        string // текстовая версия
	HTML        string // опционально
	Attachments []Attachment
}

// Attachment вложение письма
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Формат вложения-приглашения в календарь
const ContentTypeCalendar = "text/calendar; method=REQUEST"
