package update_appointment_type

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
)

type fakeService struct {
	err    error
	gotID  int64
	gotReq *models.AppointmentTypeRequest
	calls  int
}

func (f *fakeService) UpdateAppointmentType(_ context.Context, id int64, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	f.calls++
	f.gotID, f.gotReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentTypeResponse{ID: id, Price: req.Price, Active: ptr.Value(req.Active)}, nil
}

func put(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/admin/appointment-types/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Deactivates(t *testing.T) {
	svc := &fakeService{}
	rec := put(NewHandler(svc, logger.NewNop()), "2",
		`{"names":{"en":"Audit"},"durationMinutes":90,"price":300,"active":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), svc.gotID)
	require.NotNil(t, svc.gotReq.Active)
	assert.False(t, *svc.gotReq.Active)
	assert.Contains(t, rec.Body.String(), `"active":false`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
		wantCall   bool
	}{
		{name: "bad id", id: "x", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", id: "2", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "missing type", id: "2", body: `{"durationMinutes":30}`, err: calendar.ErrAppointmentTypeNotFound, wantStatus: http.StatusNotFound, wantCall: true},
		{name: "invalid price", id: "2", body: `{"price":-5}`, err: calendar.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCall: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := put(NewHandler(svc, logger.NewNop()), tt.id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCall, svc.calls == 1)
		})
	}
}
