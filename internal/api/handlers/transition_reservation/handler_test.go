package transition_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
)

type fakeService struct {
	resp *models.TransitionResponse
	err  error

	gotID  int64
	gotReq *models.TransitionRequest
}

func (f *fakeService) Transition(_ context.Context, id int64, _ domain.Identity, req *models.TransitionRequest) (*models.TransitionResponse, error) {
	f.gotID = id
	f.gotReq = req
	return f.resp, f.err
}

var admin = domain.Identity{UserID: "admin-1", IsAdmin: true}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/"+id+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	r = r.WithContext(middleware.WithIdentity(r.Context(), admin))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.TransitionResponse{
		Reservation: &models.ReservationResponse{ID: 5, Status: "confirmed"},
		Warnings:    []string{"meeting_link_missing"},
	}}
	rec := patch(NewHandler(svc, logger.NewNop()), "5", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, "confirmed", svc.gotReq.Status)

	var body models.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"meeting_link_missing"}, body.Warnings)
}

func TestHandle_RejectedTransitionReturnsServerTruth(t *testing.T) {
	svc := &fakeService{
		resp: &models.TransitionResponse{Reservation: &models.ReservationResponse{ID: 5, Status: "cancelled"}},
		err:  fmt.Errorf("%w: cancelled -> confirmed", reservations.ErrInvalidTransition),
	}
	rec := patch(NewHandler(svc, logger.NewNop()), "5", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error string                     `json:"error"`
		Data  models.ReservationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgInvalidTransition, body.Error)
	assert.Equal(t, "cancelled", body.Data.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		retryable  bool
	}{
		{name: "not found", err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid status", err: reservations.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "forbidden", err: reservations.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "storage", err: reservations.ErrInternal, wantStatus: http.StatusServiceUnavailable, retryable: true},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), "5", `{"status":"confirmed"}`)
			require.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.Nil(t, body.Data)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, patch(h, "abc", `{"status":"confirmed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, "5", `{"state":"confirmed"}`).Code, "unknown field")
	assert.Zero(t, svc.gotID)
}

func TestHandle_RequiresIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"confirmed"}`))
	r = mux.SetURLVars(r, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
