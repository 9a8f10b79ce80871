package changefeed

import (
	"context"
	"sync"
)

// DefaultBuffer размер буфера канала подписчика
const DefaultBuffer = 64

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub in-process шина событий. Используется, когда Redis выключен
// (один инстанс сервиса).
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	logger Logger
}

// NewHub создает шину
func NewHub(logger Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: DefaultBuffer,
		logger: logger,
	}
}

// Publish рассылает событие всем подписчикам
func (h *Hub) Publish(_ context.Context, e Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.deliver(e) {
			h.logger.Warn("changefeed: subscriber is slow, dropped %s event for %s id=%d", e.Type, e.Collection, e.ID)
		}
	}
	return nil
}

// Subscribe открывает подписку до отмены ctx или Close
func (h *Hub) Subscribe(ctx context.Context) (*Subscription, error) {
	var sub *Subscription
	sub = newSubscription(h.buffer, func() { h.remove(sub) })

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	close(sub.events)
}

// Subscribers количество активных подписок
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
