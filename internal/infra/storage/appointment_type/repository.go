package appointment_type

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/psqlbuilder"
)

const table = "appointment_types"

var columns = []string{
	"id",
	"names",
	"descriptions",
	"duration_minutes",
	"price",
	"color",
	"available_online",
	"available_on_site",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий типов консультаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает типы консультаций, activeOnly отбрасывает выключенные
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AppointmentType, 0)
	for rows.Next() {
		at, err := scanAppointmentType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		result = append(result, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetByID получает тип консультации по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	at, err := scanAppointmentType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return at, nil
}

// Create создает тип консультации
func (r *Repository) Create(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	names, descriptions, err := encodeLocalized(at)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"names",
			"descriptions",
			"duration_minutes",
			"price",
			"color",
			"available_online",
			"available_on_site",
			"active",
		).
		Values(
			names,
			descriptions,
			at.DurationMinutes,
			at.Price,
			at.Color,
			at.AvailableOnline,
			at.AvailableOnSite,
			at.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&at.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return at, nil
}

// Update перезаписывает тип консультации. Существующие бронирования не затрагиваются:
// цена и название в них денормализованы.
func (r *Repository) Update(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	names, descriptions, err := encodeLocalized(at)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("names", names).
		Set("descriptions", descriptions).
		Set("duration_minutes", at.DurationMinutes).
		Set("price", at.Price).
		Set("color", at.Color).
		Set("available_online", at.AvailableOnline).
		Set("available_on_site", at.AvailableOnSite).
		Set("active", at.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": at.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return at, nil
}

func encodeLocalized(at *domain.AppointmentType) ([]byte, []byte, error) {
	names, err := json.Marshal(nonNil(at.Names))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: names: %v", ErrEncode, err)
	}
	descriptions, err := json.Marshal(nonNil(at.Descriptions))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: descriptions: %v", ErrEncode, err)
	}
	return names, descriptions, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func scanAppointmentType(row rowScanner) (*domain.AppointmentType, error) {
	var (
		at                   domain.AppointmentType
		names, descriptions  []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&at.ID,
		&names,
		&descriptions,
		&at.DurationMinutes,
		&at.Price,
		&at.Color,
		&at.AvailableOnline,
		&at.AvailableOnSite,
		&at.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(names, &at.Names); err != nil {
		return nil, fmt.Errorf("decode names: %v", err)
	}
	if len(descriptions) > 0 {
		if err := json.Unmarshal(descriptions, &at.Descriptions); err != nil {
			return nil, fmt.Errorf("decode descriptions: %v", err)
		}
	}
	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return &at, nil
}
