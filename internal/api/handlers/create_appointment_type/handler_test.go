package create_appointment_type

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
)

type fakeService struct {
	err    error
	gotReq *models.AppointmentTypeRequest
	calls  int
}

func (f *fakeService) CreateAppointmentType(_ context.Context, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentTypeResponse{
		ID:              5,
		Names:           req.Names,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}, nil
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/appointment-types", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Creates(t *testing.T) {
	svc := &fakeService{}
	rec := post(NewHandler(svc, logger.NewNop()),
		`{"names":{"en":"Strategy call","ru":"Стратегия"},"durationMinutes":60,"price":120,"availableOnline":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Strategy call", svc.gotReq.Names["en"])
	assert.Equal(t, 60, svc.gotReq.DurationMinutes)
	assert.True(t, svc.gotReq.AvailableOnline)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"names":`, wantStatus: http.StatusBadRequest},
		{name: "invalid duration", body: `{"durationMinutes":0}`, err: fmt.Errorf("%w: duration", calendar.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "storage down", body: `{"durationMinutes":30}`, err: calendar.ErrInternal, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", body: `{"durationMinutes":30}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
