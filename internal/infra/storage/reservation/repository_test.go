package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

var (
	reservationDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	createdAt       = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func reservationRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		int64(7), "user-1", "Ada Lovelace", "ada@example.com", nil,
		int64(3), "Strategy call", reservationDate, "14:00:00", "15:00:00", 60,
		"confirmed", nil, "https://meet.example.com/abc", 150.0, true,
		nil, "VIP", nil, nil, createdAt, createdAt,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(
			nil, "Ada Lovelace", "ada@example.com", nil, int64(3), "Strategy call",
			reservationDate, "14:00", "15:00", 60, "pending", nil, nil, 150.0, true, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), createdAt, createdAt))

	created, err := repo.Create(context.Background(), &domain.Reservation{
		RequesterName:     "Ada Lovelace",
		RequesterEmail:    "ada@example.com",
		AppointmentTypeID: 3,
		ServiceName:       "Strategy call",
		Date:              reservationDate,
		StartTime:         types.MustTimeString("14:00"),
		EndTime:           types.MustTimeString("15:00"),
		DurationMinutes:   60,
		Status:            domain.StatusPending,
		Fee:               150,
		Online:            true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id")).
		WithArgs(int64(7)).
		WillReturnRows(reservationRow())

	res, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, ptr.Ptr("user-1"), res.UserID)
	assert.Nil(t, res.RequesterPhone)
	assert.Equal(t, types.TimeString("14:00"), res.StartTime)
	assert.Equal(t, types.TimeString("15:00"), res.EndTime)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
	assert.Equal(t, 150.0, res.Fee)
	assert.Equal(t, ptr.Ptr("VIP"), res.InternalNotes)
	assert.Nil(t, res.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_List_ByDateAndStatuses(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM reservations WHERE reservation_date >= $1 AND reservation_date <= $2 AND status = ANY($3) ORDER BY reservation_date ASC, start_time ASC, id ASC")).
		WithArgs("2026-10-19", "2026-10-19", `{"pending","confirmed"}`).
		WillReturnRows(reservationRow())

	items, err := repo.List(context.Background(), domain.ReservationFilter{
		DateFrom: &reservationDate,
		DateTo:   &reservationDate,
		Statuses: []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ada Lovelace", items[0].RequesterName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ByOwner(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE (user_id = $1 OR lower(requester_email) = lower($2))")).
		WithArgs("user-1", "ada@example.com").
		WillReturnRows(sqlmock.NewRows(columns))

	items, err := repo.List(context.Background(), domain.ReservationFilter{
		UserID: ptr.Ptr("user-1"),
		Email:  ptr.Ptr("ada@example.com"),
	})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMock(t)
	cancelledAt := createdAt.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations SET status = $1")).
		WithArgs("cancelled", nil, nil, 150.0, nil, nil, "client request", cancelledAt, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(cancelledAt))

	res := &domain.Reservation{
		ID:                 7,
		Status:             domain.StatusCancelled,
		Fee:                150,
		CancellationReason: ptr.Ptr("client request"),
		CancelledAt:        &cancelledAt,
	}
	updated, err := repo.Update(context.Background(), res)

	require.NoError(t, err)
	assert.Equal(t, cancelledAt, updated.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 7))
	assert.ErrorIs(t, repo.Delete(context.Background(), 8), ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
