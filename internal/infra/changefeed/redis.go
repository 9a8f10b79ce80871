package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("changefeed: failed to publish event")

	// ErrSubscribe возвращается при ошибке подписки
	ErrSubscribe = errors.New("changefeed: failed to subscribe")
)

// RedisFeed шина событий поверх Redis pub/sub, общая для всех инстансов сервиса
type RedisFeed struct {
	client  *redis.Client
	channel string
	buffer  int
	logger  Logger
}

// NewRedisFeed создает шину на канале channel
func NewRedisFeed(client *redis.Client, channel string, logger Logger) *RedisFeed {
	return &RedisFeed{
		client:  client,
		channel: channel,
		buffer:  DefaultBuffer,
		logger:  logger,
	}
}

// Publish отправляет событие в канал Redis
func (f *RedisFeed) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Subscribe подписывается на канал. Подписка живет до отмены ctx или Close.
func (f *RedisFeed) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := f.client.Subscribe(ctx, f.channel)

	// Ждем подтверждения подписки, чтобы не потерять первые события
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: %v", ErrSubscribe, err)
	}

	sub := newSubscription(f.buffer, func() { _ = pubsub.Close() })

	go func() {
		defer close(sub.events)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case <-sub.done:
				return
			case msg, ok := <-messages:
				if !ok {
					sub.Close()
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					f.logger.Warn("changefeed: skip malformed event: %v", err)
					continue
				}
				if !sub.deliver(e) {
					f.logger.Warn("changefeed: subscriber is slow, dropped %s event for %s id=%d", e.Type, e.Collection, e.ID)
				}
			}
		}
	}()

	return sub, nil
}
