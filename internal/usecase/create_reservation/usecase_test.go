package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	appointmentTypeRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/appointment_type"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

var (
	// среда, 14 октября 2026, 10:00 UTC
	wednesday  = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	nextMonday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// memoryReservations хранилище бронирований в памяти
type memoryReservations struct {
	mu        sync.Mutex
	items     []*domain.Reservation
	nextID    int64
	createErr error
}

func (m *memoryReservations) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, r := range m.items {
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, r.Status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryReservations) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	created := *res
	created.ID = m.nextID
	created.CreatedAt = wednesday
	created.UpdatedAt = wednesday
	m.items = append(m.items, &created)
	return &created, nil
}

func containsStatus(list []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}

type fakeCalendar struct{ cfg *domain.CalendarConfig }

func (f *fakeCalendar) Get(context.Context) (*domain.CalendarConfig, error) { return f.cfg, nil }

type fakeBlocked struct{}

func (fakeBlocked) List(context.Context) ([]*domain.BlockedDate, error) { return nil, nil }

type fakeTypes struct {
	items map[int64]*domain.AppointmentType
	err   error
}

func (f *fakeTypes) GetByID(_ context.Context, id int64) (*domain.AppointmentType, error) {
	if f.err != nil {
		return nil, f.err
	}
	at, ok := f.items[id]
	if !ok {
		return nil, appointmentTypeRepo.ErrAppointmentTypeNotFound
	}
	return at, nil
}

type recordingPublisher struct {
	events []changefeed.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e changefeed.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type countingMetrics struct{ outcomes map[string]int }

func (m *countingMetrics) IncReservationAttempt(outcome string) {
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

// staleAvailability отдает один и тот же снимок доступности,
// как если бы оба запроса прочитали данные до записи друг друга
type staleAvailability struct {
	inner    AvailabilityCalculator
	snapshot *get_available_slots.Response
}

func (s *staleAvailability) Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	if s.snapshot == nil {
		resp, err := s.inner.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		s.snapshot = resp
	}
	return s.snapshot, nil
}

type testEnv struct {
	uc           *UseCase
	availability *get_available_slots.UseCase
	store        *memoryReservations
	types        *fakeTypes
	publisher    *recordingPublisher
	metrics      *countingMetrics
}

func newTestEnv() *testEnv {
	store := &memoryReservations{}
	availability := get_available_slots.NewUseCase(store, &fakeCalendar{cfg: domain.DefaultCalendarConfig()}, fakeBlocked{}, logger.NewNop()).
		WithTimeProvider(fixedClock{now: wednesday})
	typesRepo := &fakeTypes{items: map[int64]*domain.AppointmentType{
		1: {
			ID: 1, Names: map[string]string{"en": "Strategy session", "de": "Strategiegespräch"},
			DurationMinutes: 60, Price: 150, AvailableOnline: true, Active: true,
		},
		2: {
			ID: 2, Names: map[string]string{"en": "Legacy audit"},
			DurationMinutes: 60, Price: 90, AvailableOnSite: true, Active: false,
		},
		3: {
			ID: 3, Names: map[string]string{"en": "Workshop"},
			DurationMinutes: 90, Price: 300, AvailableOnSite: true, Active: true,
		},
	}}
	publisher := &recordingPublisher{}
	metrics := &countingMetrics{}

	uc := NewUseCase(availability, store, typesRepo, publisher, logger.NewNop()).
		WithTimeProvider(fixedClock{now: wednesday}).
		WithMetrics(metrics)

	return &testEnv{uc: uc, availability: availability, store: store, types: typesRepo, publisher: publisher, metrics: metrics}
}

func validRequest(start string) *Request {
	return &Request{
		RequesterName:     "Ada Lovelace",
		RequesterEmail:    "ada@example.com",
		AppointmentTypeID: 1,
		Date:              nextMonday,
		StartTime:         types.MustTimeString(start),
	}
}

func (e *testEnv) slots(t *testing.T) []types.TimeString {
	t.Helper()
	resp, err := e.availability.Execute(context.Background(), &get_available_slots.Request{Date: nextMonday})
	require.NoError(t, err)
	return resp.Slots
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	env := newTestEnv()
	req := validRequest("09:00")
	req.UserID = ptr.Ptr("user-1")
	req.Notes = ptr.Ptr("Please call before")
	req.Language = "de"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	res := resp.Reservation
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, nextMonday, res.Date)
	assert.Equal(t, types.MustTimeString("09:00"), res.StartTime)
	assert.Equal(t, types.MustTimeString("10:00"), res.EndTime)
	assert.Equal(t, 60, res.DurationMinutes)
	assert.Equal(t, 150.0, res.Fee)
	assert.True(t, res.Online)
	assert.Equal(t, "Strategiegespräch", res.ServiceName)
	assert.Equal(t, "user-1", ptr.Value(res.UserID))
	assert.Equal(t, "Please call before", ptr.Value(res.Notes))

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, changefeed.EventCreated, env.publisher.events[0].Type)
	assert.Equal(t, changefeed.CollectionReservations, env.publisher.events[0].Collection)
	assert.Equal(t, "2026-10-19", env.publisher.events[0].Date)
	assert.Equal(t, 1, env.metrics.outcomes["created"])
}

func TestExecute_BookedSlotDisappears(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), validRequest("09:00"))
	require.NoError(t, err)

	assert.NotContains(t, env.slots(t), types.MustTimeString("09:00"))

	_, err = env.uc.Execute(context.Background(), validRequest("09:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, env.store.items, 1)
}

func TestExecute_ExistingConfirmedReservation(t *testing.T) {
	env := newTestEnv()
	env.store.items = append(env.store.items, &domain.Reservation{
		ID: 100, Date: nextMonday, StartTime: types.MustTimeString("14:00"),
		DurationMinutes: 60, Status: domain.StatusConfirmed,
	})

	_, err := env.uc.Execute(context.Background(), validRequest("14:00"))

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Len(t, env.store.items, 1)
	assert.Empty(t, env.publisher.events)
	assert.Equal(t, 1, env.metrics.outcomes["slot_unavailable"])
}

func TestExecute_SlotOutsideBookingWindow(t *testing.T) {
	env := newTestEnv()
	req := validRequest("09:00")
	req.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) // завтра 09:00, до начала меньше 24 часов

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideBookingWindow)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Empty(t, env.store.items)
}

func TestExecute_SlotNotOnGrid(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), validRequest("12:00"))

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SlotCheckedBeforeRequesterData(t *testing.T) {
	env := newTestEnv()
	env.store.items = append(env.store.items, &domain.Reservation{
		ID: 100, Date: nextMonday, StartTime: types.MustTimeString("14:00"), Status: domain.StatusPending,
	})
	req := validRequest("14:00")
	req.RequesterEmail = "not-an-email"

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.NotErrorIs(t, err, domain.ErrValidationFailed)
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "empty name", modify: func(r *Request) { r.RequesterName = "   " }, wantErr: ErrInvalidInput},
		{name: "empty email", modify: func(r *Request) { r.RequesterEmail = "" }, wantErr: ErrInvalidInput},
		{name: "malformed email", modify: func(r *Request) { r.RequesterEmail = "ada@" }, wantErr: ErrInvalidInput},
		{name: "display name form", modify: func(r *Request) { r.RequesterEmail = "Ada <ada@example.com>" }, wantErr: ErrInvalidInput},
		{name: "no appointment type", modify: func(r *Request) { r.AppointmentTypeID = 0 }, wantErr: ErrInvalidInput},
		{name: "unknown appointment type", modify: func(r *Request) { r.AppointmentTypeID = 42 }, wantErr: ErrAppointmentTypeNotFound},
		{name: "inactive appointment type", modify: func(r *Request) { r.AppointmentTypeID = 2 }, wantErr: ErrAppointmentTypeInactive},
		{name: "missing start time", modify: func(r *Request) { r.StartTime = "" }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest("09:00")
			tt.modify(req)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
			assert.Empty(t, env.store.items)
			assert.Empty(t, env.publisher.events)
		})
	}
}

func TestExecute_FeeCapturedAtBookingTime(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest("10:00"))
	require.NoError(t, err)

	env.types.items[1].Price = 999

	assert.Equal(t, 150.0, resp.Reservation.Fee)
	assert.Equal(t, 150.0, env.store.items[0].Fee)
}

func TestExecute_EndTimeFollowsTypeDuration(t *testing.T) {
	env := newTestEnv()
	req := validRequest("15:00")
	req.AppointmentTypeID = 3

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.MustTimeString("16:30"), resp.Reservation.EndTime)
	assert.Equal(t, 90, resp.Reservation.DurationMinutes)
	assert.False(t, resp.Reservation.Online)
}

// Повторная проверка не берет блокировку: если оба запроса увидели слот
// свободным, оба бронирования сохраняются.
func TestExecute_ConcurrentRequestsCanDoubleBook(t *testing.T) {
	env := newTestEnv()
	stale := &staleAvailability{inner: env.availability}
	uc := NewUseCase(stale, env.store, env.types, env.publisher, logger.NewNop()).
		WithTimeProvider(fixedClock{now: wednesday})

	_, err := uc.Execute(context.Background(), validRequest("09:00"))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), validRequest("09:00"))
	require.NoError(t, err)

	assert.Len(t, env.store.items, 2)
}

func TestExecute_StorageFailure(t *testing.T) {
	env := newTestEnv()
	env.store.createErr = errors.New("connection reset")

	_, err := env.uc.Execute(context.Background(), validRequest("09:00"))

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Empty(t, env.publisher.events)
	assert.Equal(t, 1, env.metrics.outcomes["error"])
}

func TestExecute_AppointmentTypeStorageFailure(t *testing.T) {
	env := newTestEnv()
	env.types.err = errors.New("timeout")

	_, err := env.uc.Execute(context.Background(), validRequest("09:00"))

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestExecute_PublishFailureKeepsReservation(t *testing.T) {
	env := newTestEnv()
	env.publisher.err = errors.New("redis down")

	resp, err := env.uc.Execute(context.Background(), validRequest("09:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Reservation.ID)
	assert.Len(t, env.store.items, 1)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ada@example.com"))
	assert.True(t, IsValidEmail("ada.lovelace+consult@mail.example.org"))
	assert.False(t, IsValidEmail("ada@localhost"))
	assert.False(t, IsValidEmail("ada example.com"))
	assert.False(t, IsValidEmail(""))
}
