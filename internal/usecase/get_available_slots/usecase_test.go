package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeReservations struct {
	items      []*domain.Reservation
	err        error
	lastFilter domain.ReservationFilter
}

func (f *fakeReservations) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	return f.items, f.err
}

type fakeCalendar struct {
	cfg *domain.CalendarConfig
	err error
}

func (f *fakeCalendar) Get(context.Context) (*domain.CalendarConfig, error) {
	return f.cfg, f.err
}

type fakeBlocked struct {
	items []*domain.BlockedDate
	err   error
}

func (f *fakeBlocked) List(context.Context) ([]*domain.BlockedDate, error) {
	return f.items, f.err
}

func newTestUseCase(res *fakeReservations, cal *fakeCalendar, blocked *fakeBlocked) *UseCase {
	return NewUseCase(res, cal, blocked, logger.NewNop()).WithTimeProvider(fixedClock{now: wednesday})
}

func TestUseCase_Execute(t *testing.T) {
	res := &fakeReservations{items: []*domain.Reservation{
		reservationAt(nextMonday, "14:00", 60, domain.StatusConfirmed),
	}}
	uc := newTestUseCase(res, &fakeCalendar{cfg: domain.DefaultCalendarConfig()}, &fakeBlocked{})

	resp, err := uc.Execute(context.Background(), &Request{Date: nextMonday.Add(13 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, nextMonday, resp.Date)
	assert.Equal(t, ts("09:00", "10:00", "11:00", "13:00", "15:00", "16:00"), resp.Slots)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.Equal(t, "UTC", resp.Timezone)

	require.NotNil(t, res.lastFilter.DateFrom)
	assert.Equal(t, nextMonday, *res.lastFilter.DateFrom)
	assert.NotContains(t, res.lastFilter.Statuses, domain.StatusCancelled)
}

func TestUseCase_Execute_DefaultConfigWhenMissing(t *testing.T) {
	uc := newTestUseCase(&fakeReservations{}, &fakeCalendar{err: calendarRepo.ErrConfigNotFound}, &fakeBlocked{})

	resp, err := uc.Execute(context.Background(), &Request{Date: nextMonday})
	require.NoError(t, err)
	assert.Equal(t, ts("09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"), resp.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	boom := errors.New("connection refused")
	broken := domain.DefaultCalendarConfig()
	broken.SlotDurationMinutes = 0

	tests := []struct {
		name    string
		res     *fakeReservations
		cal     *fakeCalendar
		blocked *fakeBlocked
		req     *Request
		wantErr error
		kind    error
	}{
		{
			name: "missing date", req: &Request{},
			res: &fakeReservations{}, cal: &fakeCalendar{cfg: domain.DefaultCalendarConfig()}, blocked: &fakeBlocked{},
			wantErr: ErrInvalidInput, kind: domain.ErrValidationFailed,
		},
		{
			name: "calendar unavailable", req: &Request{Date: nextMonday},
			res: &fakeReservations{}, cal: &fakeCalendar{err: boom}, blocked: &fakeBlocked{},
			wantErr: ErrStorage, kind: domain.ErrRemoteUnavailable,
		},
		{
			name: "blocked dates unavailable", req: &Request{Date: nextMonday},
			res: &fakeReservations{}, cal: &fakeCalendar{cfg: domain.DefaultCalendarConfig()}, blocked: &fakeBlocked{err: boom},
			wantErr: ErrStorage, kind: domain.ErrRemoteUnavailable,
		},
		{
			name: "reservations unavailable", req: &Request{Date: nextMonday},
			res: &fakeReservations{err: boom}, cal: &fakeCalendar{cfg: domain.DefaultCalendarConfig()}, blocked: &fakeBlocked{},
			wantErr: ErrStorage, kind: domain.ErrRemoteUnavailable,
		},
		{
			name: "stored config invalid", req: &Request{Date: nextMonday},
			res: &fakeReservations{}, cal: &fakeCalendar{cfg: broken}, blocked: &fakeBlocked{},
			wantErr: ErrInvalidConfig, kind: domain.ErrConfigurationInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestUseCase(tt.res, tt.cal, tt.blocked).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestIsSlotAvailable(t *testing.T) {
	available := ts("09:00", "10:00")
	assert.True(t, IsSlotAvailable(types.MustTimeString("09:00:00"), available))
	assert.False(t, IsSlotAvailable(types.MustTimeString("11:00"), available))
}
