package main

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// namedHandlers заполняет каждое поле apiHandlers обработчиком, отвечающим именем поля
func namedHandlers() apiHandlers {
	var h apiHandlers
	v := reflect.ValueOf(&h).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		v.Field(i).Set(reflect.ValueOf(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Route", name)
			w.WriteHeader(http.StatusOK)
		})))
	}
	return h
}

// headerAuth: Authorization означает вход, X-Admin: 1 означает администратора
type headerAuth struct{}

func (headerAuth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Optional-Auth", "1")
		next.ServeHTTP(w, r)
	})
}

func (headerAuth) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (headerAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin") != "1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type role int

const (
	anonymous role = iota
	requester
	administrator
)

func TestRouter(t *testing.T) {
	limited := 0
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited++
			next.ServeHTTP(w, r)
		})
	}
	router := newRouter(namedHandlers(), headerAuth{}, limit, nil, "/metrics")

	tests := []struct {
		method     string
		path       string
		as         role
		wantStatus int
		wantRoute  string
	}{
		{http.MethodGet, "/api/v1/calendar/config", anonymous, http.StatusOK, "GetCalendarConfig"},
		{http.MethodGet, "/api/v1/appointment-types", anonymous, http.StatusOK, "ListPublicAppointmentTypes"},
		{http.MethodGet, "/api/v1/available-slots", anonymous, http.StatusOK, "GetAvailableSlots"},
		{http.MethodPost, "/api/v1/reservations", anonymous, http.StatusOK, "CreateReservation"},
		{http.MethodPost, "/api/v1/leads", anonymous, http.StatusOK, "CreateLead"},

		{http.MethodGet, "/api/v1/me/reservations", anonymous, http.StatusUnauthorized, ""},
		{http.MethodGet, "/api/v1/me/reservations", requester, http.StatusOK, "GetMyReservations"},
		{http.MethodPatch, "/api/v1/reservations/5/cancel", requester, http.StatusOK, "CancelReservation"},

		{http.MethodGet, "/api/v1/admin/reservations", anonymous, http.StatusUnauthorized, ""},
		{http.MethodGet, "/api/v1/admin/reservations", requester, http.StatusForbidden, ""},
		{http.MethodGet, "/api/v1/admin/reservations", administrator, http.StatusOK, "ListReservations"},
		{http.MethodGet, "/api/v1/admin/reservations/board", administrator, http.StatusOK, "GetReservationBoard"},
		{http.MethodGet, "/api/v1/admin/reservations/feed", administrator, http.StatusOK, "ReservationFeed"},
		{http.MethodGet, "/api/v1/admin/reservations/7", administrator, http.StatusOK, "GetReservation"},
		{http.MethodPatch, "/api/v1/admin/reservations/7", administrator, http.StatusOK, "UpdateReservation"},
		{http.MethodDelete, "/api/v1/admin/reservations/7", administrator, http.StatusOK, "DeleteReservation"},
		{http.MethodPatch, "/api/v1/admin/reservations/7/status", administrator, http.StatusOK, "TransitionReservation"},

		{http.MethodPut, "/api/v1/admin/calendar/config", administrator, http.StatusOK, "UpdateCalendarConfig"},
		{http.MethodGet, "/api/v1/admin/calendar.ics", administrator, http.StatusOK, "ExportCalendar"},
		{http.MethodGet, "/api/v1/admin/blocked-dates", administrator, http.StatusOK, "ListBlockedDates"},
		{http.MethodPost, "/api/v1/admin/blocked-dates", administrator, http.StatusOK, "CreateBlockedDate"},
		{http.MethodDelete, "/api/v1/admin/blocked-dates/3", administrator, http.StatusOK, "DeleteBlockedDate"},
		{http.MethodGet, "/api/v1/admin/appointment-types", administrator, http.StatusOK, "ListAllAppointmentTypes"},
		{http.MethodPost, "/api/v1/admin/appointment-types", administrator, http.StatusOK, "CreateAppointmentType"},
		{http.MethodPut, "/api/v1/admin/appointment-types/2", administrator, http.StatusOK, "UpdateAppointmentType"},

		{http.MethodGet, "/api/v1/admin/leads", administrator, http.StatusOK, "ListLeads"},
		{http.MethodGet, "/api/v1/admin/leads/pipeline", administrator, http.StatusOK, "GetLeadPipeline"},
		{http.MethodGet, "/api/v1/admin/leads/4", administrator, http.StatusOK, "GetLead"},
		{http.MethodPatch, "/api/v1/admin/leads/4", administrator, http.StatusOK, "UpdateLead"},
		{http.MethodDelete, "/api/v1/admin/leads/4", administrator, http.StatusOK, "DeleteLead"},
		{http.MethodPatch, "/api/v1/admin/leads/4/stage", administrator, http.StatusOK, "MoveLeadStage"},
		{http.MethodPatch, "/api/v1/admin/leads/4/stage", requester, http.StatusForbidden, ""},

		{http.MethodGet, "/api/v1/unknown", requester, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.as >= requester {
				r.Header.Set("Authorization", "Bearer token")
			}
			if tt.as == administrator {
				r.Header.Set("X-Admin", "1")
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRoute, rec.Header().Get("X-Route"))
			if tt.wantStatus != http.StatusNotFound {
				assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			}
		})
	}

	assert.Equal(t, 2, limited, "only public write endpoints are rate limited")
}

func TestRouter_CreateReservationUsesOptionalAuth(t *testing.T) {
	router := newRouter(namedHandlers(), headerAuth{}, func(h http.Handler) http.Handler { return h }, nil, "/metrics")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil))

	assert.Equal(t, "1", rec.Header().Get("X-Optional-Auth"))
	assert.Equal(t, "CreateReservation", rec.Header().Get("X-Route"))
}
