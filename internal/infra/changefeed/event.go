package changefeed

import (
	"context"
	"sync"
	"time"
)

// EventType тип изменения
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Коллекции, по которым идут события
const (
	CollectionReservations = "reservations"
	CollectionLeads        = "leads"
	CollectionCalendar     = "calendar"
)

// Event уведомление об изменении записи. Получатель перечитывает данные сам.
type Event struct {
	Type       EventType `json:"type"`
	Collection string    `json:"collection"`
	ID         int64     `json:"id,omitempty"`
	Date       string    `json:"date,omitempty"`   // затронутая дата бронирования (YYYY-MM-DD)
	Status     string    `json:"status,omitempty"` // статус или этап после изменения
	OccurredAt time.Time `json:"occurred_at"`
}

// Feed шина событий: Hub внутри процесса или RedisFeed между инстансами
type Feed interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(ctx context.Context) (*Subscription, error)
}

var (
	_ Feed = (*Hub)(nil)
	_ Feed = (*RedisFeed)(nil)
)

// Subscription поток событий. Канал закрывается после Close или отмены контекста
// подписки, повторно открыть подписку нельзя.
type Subscription struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
	stop   func()
}

func newSubscription(buffer int, stop func()) *Subscription {
	return &Subscription{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
		stop:   stop,
	}
}

// Events канал событий
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close отписывается и закрывает канал
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.stop != nil {
			s.stop()
		}
	})
}

// deliver отправляет событие, не блокируясь на медленном получателе.
// Возвращает false, если событие пришлось отбросить.
func (s *Subscription) deliver(e Event) bool {
	select {
	case <-s.done:
		return true
	default:
	}
	select {
	case s.events <- e:
		return true
	default:
		return false
	}
}
