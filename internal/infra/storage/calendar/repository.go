package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/psqlbuilder"
)

const (
	settingsTable = "calendar_settings"
	daysTable     = "calendar_working_days"
	settingsID    = 1
)

// Repository репозиторий настроек календаря.
// Настройки хранятся одной строкой в calendar_settings и семью строками в calendar_working_days.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает настройки календаря
func (r *Repository) Get(ctx context.Context) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_duration_minutes",
		"min_advance_hours",
		"max_advance_days",
		"timezone",
		"updated_at",
	).
		From(settingsTable).
		Where(squirrel.Eq{"id": settingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build settings query: %v", ErrBuildQuery, err)
	}

	var (
		cfg       domain.CalendarConfig
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.SlotDurationMinutes,
		&cfg.MinAdvanceHours,
		&cfg.MaxAdvanceDays,
		&cfg.Timezone,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	query, args, err = psqlbuilder.Select(
		"weekday",
		"enabled",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
	).
		From(daysTable).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build working days query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute working days query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			weekday int
			day     domain.DaySchedule
		)
		if err := rows.Scan(&weekday, &day.Enabled, &day.Start, &day.End, &day.BreakStart, &day.BreakEnd); err != nil {
			return nil, fmt.Errorf("%w: Get - scan working day: %v", ErrScanRow, err)
		}
		if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
			return nil, fmt.Errorf("%w: Get - weekday %d out of range", ErrScanRow, weekday)
		}
		cfg.Week[weekday] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Get - iterate working days: %v", ErrScanRow, err)
	}

	return &cfg, nil
}

// Save записывает настройки целиком (upsert).
// Вызывать внутри транзакции, чтобы строки дней и настроек менялись атомарно.
func (r *Repository) Save(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns("id", "slot_duration_minutes", "min_advance_hours", "max_advance_days", "timezone").
		Values(settingsID, cfg.SlotDurationMinutes, cfg.MinAdvanceHours, cfg.MaxAdvanceDays, cfg.Timezone).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"slot_duration_minutes = EXCLUDED.slot_duration_minutes, " +
			"min_advance_hours = EXCLUDED.min_advance_hours, " +
			"max_advance_days = EXCLUDED.max_advance_days, " +
			"timezone = EXCLUDED.timezone, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build settings upsert: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute settings upsert: %v", ErrExecQuery, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	days := psqlbuilder.Insert(daysTable).
		Columns("weekday", "enabled", "start_time", "end_time", "break_start", "break_end")
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := cfg.Week[wd]
		days = days.Values(int(wd), day.Enabled, day.Start, day.End, day.BreakStart, day.BreakEnd)
	}
	query, args, err = days.
		Suffix("ON CONFLICT (weekday) DO UPDATE SET " +
			"enabled = EXCLUDED.enabled, " +
			"start_time = EXCLUDED.start_time, " +
			"end_time = EXCLUDED.end_time, " +
			"break_start = EXCLUDED.break_start, " +
			"break_end = EXCLUDED.break_end").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build working days upsert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Save - execute working days upsert: %v", ErrExecQuery, err)
	}

	return cfg, nil
}
