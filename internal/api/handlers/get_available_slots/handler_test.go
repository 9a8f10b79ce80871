package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	got  *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots"+query, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:                date,
		Slots:               []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("10:00")},
		SlotDurationMinutes: 60,
		Timezone:            "Europe/Berlin",
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "?date=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, date, uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19", body.Date)
	assert.Equal(t, []string{"09:00", "10:00"}, body.Slots)
	assert.Equal(t, "Europe/Berlin", body.Timezone)
}

func TestHandle_EmptyDayIsNotAnError(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)}}

	rec := get(NewHandler(uc, logger.NewNop()), "?date=2026-10-18")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "missing date", query: "", wantStatus: http.StatusBadRequest},
		{name: "bad format", query: "?date=19.10.2026", wantStatus: http.StatusBadRequest},
		{name: "broken config", query: "?date=2026-10-19", err: getAvailableSlots.ErrInvalidConfig, wantStatus: http.StatusBadRequest},
		{name: "storage down", query: "?date=2026-10-19", err: getAvailableSlots.ErrStorage, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
