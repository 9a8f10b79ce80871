package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
)

type fakeService struct {
	resp *models.TransitionResponse
	err  error

	gotReason *string
	called    bool
}

func (f *fakeService) CancelByRequester(_ context.Context, _ int64, _ domain.Identity, reason *string) (*models.TransitionResponse, error) {
	f.called = true
	f.gotReason = reason
	return f.resp, f.err
}

func cancelRequest(h *Handler, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/3/cancel", nil)
	} else {
		r = httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/3/cancel", strings.NewReader(body))
	}
	r = mux.SetURLVars(r, map[string]string{"id": "3"})
	r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_CancelWithoutBody(t *testing.T) {
	svc := &fakeService{resp: &models.TransitionResponse{
		Reservation: &models.ReservationResponse{ID: 3, Status: "cancelled"},
	}}
	rec := cancelRequest(NewHandler(svc, logger.NewNop()), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.called)
	assert.Nil(t, svc.gotReason)
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := &fakeService{resp: &models.TransitionResponse{
		Reservation: &models.ReservationResponse{ID: 3, Status: "cancelled"},
	}}
	rec := cancelRequest(NewHandler(svc, logger.NewNop()), `{"reason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReason)
	assert.Equal(t, "sick", *svc.gotReason)
}

func TestHandle_AlreadyStartedReturnsTruth(t *testing.T) {
	svc := &fakeService{
		resp: &models.TransitionResponse{Reservation: &models.ReservationResponse{ID: 3, Status: "confirmed"}},
		err:  reservations.ErrReservationStarted,
	}
	rec := cancelRequest(NewHandler(svc, logger.NewNop()), "")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Error string                     `json:"error"`
		Data  models.ReservationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgAlreadyStarted, body.Error)
	assert.Equal(t, "confirmed", body.Data.Status)
}

func TestHandle_ForeignReservation(t *testing.T) {
	rec := cancelRequest(NewHandler(&fakeService{err: reservations.ErrAccessDenied}, logger.NewNop()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestHandle_StorageFailure(t *testing.T) {
	rec := cancelRequest(NewHandler(&fakeService{err: reservations.ErrInternal}, logger.NewNop()), "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"retryable":true`)
}
