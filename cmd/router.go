package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/pkg/metrics"
)

// apiHandlers обработчики эндпоинтов /api/v1
type apiHandlers struct {
	GetCalendarConfig          http.HandlerFunc
	ListPublicAppointmentTypes http.HandlerFunc
	GetAvailableSlots          http.HandlerFunc
	CreateReservation          http.HandlerFunc
	CreateLead                 http.HandlerFunc

	GetMyReservations http.HandlerFunc
	CancelReservation http.HandlerFunc

	UpdateCalendarConfig    http.HandlerFunc
	ExportCalendar          http.HandlerFunc
	ListBlockedDates        http.HandlerFunc
	CreateBlockedDate       http.HandlerFunc
	DeleteBlockedDate       http.HandlerFunc
	ListAllAppointmentTypes http.HandlerFunc
	CreateAppointmentType   http.HandlerFunc
	UpdateAppointmentType   http.HandlerFunc

	ListReservations      http.HandlerFunc
	GetReservationBoard   http.HandlerFunc
	ReservationFeed       http.HandlerFunc
	GetReservation        http.HandlerFunc
	UpdateReservation     http.HandlerFunc
	DeleteReservation     http.HandlerFunc
	TransitionReservation http.HandlerFunc

	ListLeads       http.HandlerFunc
	GetLeadPipeline http.HandlerFunc
	GetLead         http.HandlerFunc
	UpdateLead      http.HandlerFunc
	DeleteLead      http.HandlerFunc
	MoveLeadStage   http.HandlerFunc
}

// routeAuth проверки доступа для групп маршрутов
type routeAuth interface {
	OptionalAuth(next http.Handler) http.Handler
	Auth(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

// newRouter собирает роутер. m == nil отключает метрики.
func newRouter(
	h apiHandlers,
	auth routeAuth,
	limit func(http.Handler) http.Handler,
	m *metrics.Metrics,
	metricsPath string,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
		r.Handle(metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/calendar/config", h.GetCalendarConfig).Methods(http.MethodGet)
	api.HandleFunc("/appointment-types", h.ListPublicAppointmentTypes).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", h.GetAvailableSlots).Methods(http.MethodGet)

	// Бронирование доступно и без входа; авторизованный заявитель потом видит его в /me
	api.Handle("/reservations", limit(auth.OptionalAuth(h.CreateReservation))).Methods(http.MethodPost)
	api.Handle("/leads", limit(h.CreateLead)).Methods(http.MethodPost)

	// ============================================================
	// REQUESTER ROUTES
	// ============================================================

	// Подроутер без префикса: при промахе mux идет дальше, к /admin
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	protected.HandleFunc("/me/reservations", h.GetMyReservations).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}/cancel", h.CancelReservation).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Auth, auth.RequireAdmin)

	// --- Календарь ---
	admin.HandleFunc("/calendar/config", h.UpdateCalendarConfig).Methods(http.MethodPut)
	admin.HandleFunc("/calendar.ics", h.ExportCalendar).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", h.ListBlockedDates).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", h.CreateBlockedDate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{id}", h.DeleteBlockedDate).Methods(http.MethodDelete)
	admin.HandleFunc("/appointment-types", h.ListAllAppointmentTypes).Methods(http.MethodGet)
	admin.HandleFunc("/appointment-types", h.CreateAppointmentType).Methods(http.MethodPost)
	admin.HandleFunc("/appointment-types/{id}", h.UpdateAppointmentType).Methods(http.MethodPut)

	// --- Бронирования (статические пути до {id}) ---
	admin.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/board", h.GetReservationBoard).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/feed", h.ReservationFeed).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", h.GetReservation).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", h.UpdateReservation).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}", h.DeleteReservation).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations/{id}/status", h.TransitionReservation).Methods(http.MethodPatch)

	// --- Заявки ---
	admin.HandleFunc("/leads", h.ListLeads).Methods(http.MethodGet)
	admin.HandleFunc("/leads/pipeline", h.GetLeadPipeline).Methods(http.MethodGet)
	admin.HandleFunc("/leads/{id}", h.GetLead).Methods(http.MethodGet)
	admin.HandleFunc("/leads/{id}", h.UpdateLead).Methods(http.MethodPatch)
	admin.HandleFunc("/leads/{id}", h.DeleteLead).Methods(http.MethodDelete)
	admin.HandleFunc("/leads/{id}/stage", h.MoveLeadStage).Methods(http.MethodPatch)

	return r
}
