package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
)

type fakeService struct {
	err    error
	gotReq *models.ListRequest
	calls  int
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{
		{ID: 1, Status: "pending"},
		{ID: 2, Status: "confirmed"},
	}}, nil
}

func list(h *Handler, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_PassesFilter(t *testing.T) {
	svc := &fakeService{}
	rec := list(NewHandler(svc, logger.NewNop()), "dateFrom=2026-10-19&dateTo=2026-10-25&status=pending,confirmed&status=no_show")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq.DateFrom)
	require.NotNil(t, svc.gotReq.DateTo)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), *svc.gotReq.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), *svc.gotReq.DateTo)
	assert.Equal(t, []string{"pending", "confirmed", "no_show"}, svc.gotReq.Statuses)
	assert.Contains(t, rec.Body.String(), `"id":2`)
}

func TestHandle_NoFilter(t *testing.T) {
	svc := &fakeService{}
	rec := list(NewHandler(svc, logger.NewNop()), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.gotReq.DateFrom)
	assert.Empty(t, svc.gotReq.Statuses)
}

func TestHandle_InvalidDate(t *testing.T) {
	svc := &fakeService{}
	rec := list(NewHandler(svc, logger.NewNop()), "dateFrom=19.10.2026")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown status", err: reservations.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage down", err: reservations.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := list(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), url.Values{"status": {"lost"}}.Encode())
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
