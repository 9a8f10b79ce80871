package update_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
)

type fakeService struct {
	err    error
	gotID  int64
	gotReq *models.UpdateDetailsRequest
	calls  int
}

func (f *fakeService) UpdateDetails(_ context.Context, id int64, req *models.UpdateDetailsRequest) (*models.ReservationResponse, error) {
	f.calls++
	f.gotID, f.gotReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, MeetingLink: req.MeetingLink, Fee: 80}, nil
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Updates(t *testing.T) {
	svc := &fakeService{}
	rec := patch(NewHandler(svc, logger.NewNop()), "12", `{"meetingLink":"https://meet.example.com/abc","fee":80}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.gotID)
	assert.Equal(t, ptr.Ptr("https://meet.example.com/abc"), svc.gotReq.MeetingLink)
	require.NotNil(t, svc.gotReq.Fee)
	assert.Equal(t, 80.0, *svc.gotReq.Fee)
	assert.Nil(t, svc.gotReq.Notes, "absent field stays untouched")
	assert.Contains(t, rec.Body.String(), `"meetingLink":"https://meet.example.com/abc"`)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{name: "bad id", id: "abc", body: `{}`},
		{name: "malformed body", id: "12", body: `{"fee":`},
		{name: "unknown field", id: "12", body: `{"status":"confirmed"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := patch(NewHandler(svc, logger.NewNop()), tt.id, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "negative fee", err: reservations.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage down", err: reservations.ErrInternal, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), "12", `{"fee":-1}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
