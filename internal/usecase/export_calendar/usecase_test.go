package export_calendar

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

var wednesday = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeReservations struct {
	items  []*domain.Reservation
	err    error
	filter domain.ReservationFilter
}

func (f *fakeReservations) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.filter = filter
	return f.items, f.err
}

type fakeCalendar struct {
	cfg *domain.CalendarConfig
	err error
}

func (f *fakeCalendar) Get(context.Context) (*domain.CalendarConfig, error) { return f.cfg, f.err }

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              7,
		RequesterName:   "Ada Lovelace",
		RequesterEmail:  "ada@example.com",
		ServiceName:     "Strategy session",
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("14:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		MeetingLink:     ptr.Ptr("https://meet.example.com/abc"),
	}
}

func parse(t *testing.T, content []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.ParseCalendar(bytes.NewReader(content))
	require.NoError(t, err)
	return cal
}

func TestUseCase_Execute(t *testing.T) {
	cfg := domain.DefaultCalendarConfig()
	cfg.Timezone = "Europe/Berlin"
	res := &fakeReservations{items: []*domain.Reservation{sampleReservation()}}

	uc := NewUseCase(res, &fakeCalendar{cfg: cfg}, logger.NewNop()).WithTimeProvider(fixedClock{now: wednesday})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	require.NotNil(t, res.filter.DateFrom)
	require.NotNil(t, res.filter.DateTo)
	assert.Equal(t, "2026-10-14", res.filter.DateFrom.Format(domain.DateFormat))
	assert.Equal(t, "2026-11-13", res.filter.DateTo.Format(domain.DateFormat))
	assert.NotContains(t, res.filter.Statuses, domain.StatusCancelled)

	cal := parse(t, resp.Content)
	events := cal.Events()
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, EventUID(7), event.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "Strategy session: Ada Lovelace", event.GetProperty(ical.ComponentPropertySummary).Value)

	// 14:00 по Берлину в октябре (CEST) = 12:00 UTC
	start, err := event.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))
	end, err := event.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestUseCase_Execute_UnlimitedHorizon(t *testing.T) {
	cfg := domain.DefaultCalendarConfig()
	cfg.MaxAdvanceDays = 0
	res := &fakeReservations{}

	uc := NewUseCase(res, &fakeCalendar{cfg: cfg}, logger.NewNop()).WithTimeProvider(fixedClock{now: wednesday})

	resp, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Nil(t, res.filter.DateTo)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(&fakeReservations{}, &fakeCalendar{err: errors.New("timeout")}, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)

	uc = NewUseCase(&fakeReservations{err: errors.New("timeout")}, &fakeCalendar{err: calendarRepo.ErrConfigNotFound}, logger.NewNop())
	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestBuildInvite(t *testing.T) {
	invite := BuildInvite(sampleReservation(), time.UTC, Organizer{Name: "Consulting", Email: "office@example.com"}, wednesday)

	cal := parse(t, invite)
	require.Len(t, cal.Events(), 1)

	event := cal.Events()[0]
	assert.Contains(t, event.GetProperty(ical.ComponentPropertyOrganizer).Value, "office@example.com")
	assert.Equal(t, "https://meet.example.com/abc", event.GetProperty(ical.ComponentPropertyLocation).Value)

	attendees := event.Attendees()
	require.Len(t, attendees, 1)
	assert.Equal(t, "ada@example.com", attendees[0].Email())
	assert.Contains(t, string(invite), "METHOD:REQUEST")
}
