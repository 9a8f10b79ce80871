package reservation_feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

const msgFeedUnavailable = "поток изменений недоступен"

type Handler struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
	logger     Logger
}

// NewHandler allowedOrigins пустой - принимаются запросы только с того же origin
func NewHandler(subscriber Subscriber, allowedOrigins []string, logger Logger) *Handler {
	h := &Handler{
		subscriber: subscriber,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, o := range allowedOrigins {
				if o == "*" || strings.EqualFold(o, origin) {
					return true
				}
			}
			return false
		}
	}
	return h
}

// Handle GET /api/v1/admin/reservations/feed (WebSocket)
// Query params: collections (через запятую, по умолчанию все)
// Каждое сообщение - changefeed.Event в JSON. Клиент перечитывает измененные записи сам.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter := parseCollections(r.URL.Query().Get("collections"))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub, err := h.subscriber.Subscribe(ctx)
	if err != nil {
		h.logger.Error("GET /admin/reservations/feed - Failed to subscribe: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgFeedUnavailable)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /admin/reservations/feed - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("GET /admin/reservations/feed - Subscriber connected: remote=%s", r.RemoteAddr)

	// читаем только control-фреймы; ошибка чтения значит, что клиент ушел
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /admin/reservations/feed - Subscriber disconnected: remote=%s", r.RemoteAddr)
			return

		case e, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			if !filter.allows(e.Collection) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Warn("GET /admin/reservations/feed - Write failed: %v", err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

type collections map[string]bool

func parseCollections(s string) collections {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	c := collections{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			c[part] = true
		}
	}
	return c
}

// allows пустой фильтр пропускает все
func (c collections) allows(name string) bool {
	return len(c) == 0 || c[name]
}

var _ Subscriber = (*changefeed.Hub)(nil)
