package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"requester_name",
	"requester_email",
	"requester_phone",
	"appointment_type_id",
	"service_name",
	"reservation_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"assigned_staff_id",
	"meeting_link",
	"fee",
	"online",
	"notes",
	"internal_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"requester_name",
			"requester_email",
			"requester_phone",
			"appointment_type_id",
			"service_name",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"assigned_staff_id",
			"meeting_link",
			"fee",
			"online",
			"notes",
		).
		Values(
			res.UserID,
			res.RequesterName,
			res.RequesterEmail,
			res.RequesterPhone,
			res.AppointmentTypeID,
			res.ServiceName,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
			res.Status,
			res.AssignedStaffID,
			res.MeetingLink,
			res.Fee,
			res.Online,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List возвращает бронирования по фильтру.
// UserID и Email вместе означают "любое из": бронирования пользователя
// и бронирования, оформленные на его email без авторизации.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"reservation_date": filter.DateTo.Format(domain.DateFormat)})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where("status = ANY(?)", pq.Array(statuses))
	}

	switch {
	case filter.UserID != nil && filter.Email != nil:
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"user_id": *filter.UserID},
			squirrel.Expr("lower(requester_email) = lower(?)", *filter.Email),
		})
	case filter.UserID != nil:
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	case filter.Email != nil:
		builder = builder.Where(squirrel.Expr("lower(requester_email) = lower(?)", *filter.Email))
	}

	query, args, err := builder.OrderBy("reservation_date ASC", "start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update сохраняет изменяемые поля бронирования (статус, отмена, детали)
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", res.Status).
		Set("assigned_staff_id", res.AssignedStaffID).
		Set("meeting_link", res.MeetingLink).
		Set("fee", res.Fee).
		Set("notes", res.Notes).
		Set("internal_notes", res.InternalNotes).
		Set("cancellation_reason", res.CancellationReason).
		Set("cancelled_at", res.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.RequesterName,
		&res.RequesterEmail,
		&res.RequesterPhone,
		&res.AppointmentTypeID,
		&res.ServiceName,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&res.Status,
		&res.AssignedStaffID,
		&res.MeetingLink,
		&res.Fee,
		&res.Online,
		&res.Notes,
		&res.InternalNotes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}
	return result, nil
}
