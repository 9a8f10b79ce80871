package export_calendar

// ContentType MIME-тип iCalendar-ленты
const ContentType = "text/calendar; charset=utf-8"

// Request параметры выгрузки
type Request struct {
	Days int // сколько дней вперед выгружать, 0 - горизонт бронирования из настроек
}

// Response iCalendar-лента
type Response struct {
	Content []byte
	Count   int // количество событий
}
