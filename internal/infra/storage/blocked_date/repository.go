package blocked_date

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/psqlbuilder"
)

const table = "blocked_dates"

// Repository репозиторий заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все заблокированные даты. Повторяющиеся правила
// раскрываются в domain.BlockedDate.Blocks, поэтому фильтра по дате нет.
func (r *Repository) List(ctx context.Context) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "reason", "recurrence", "created_at").
		From(table).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var (
			bd        domain.BlockedDate
			createdAt sql.NullTime
		)
		if err := rows.Scan(&bd.ID, &bd.Date, &bd.Reason, &bd.Recurrence, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		bd.Date = domain.DateOnly(bd.Date)
		bd.CreatedAt = createdAt.Time
		result = append(result, &bd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

// Create добавляет заблокированную дату
func (r *Repository) Create(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("date", "reason", "recurrence").
		Values(bd.Date.Format(domain.DateFormat), bd.Reason, bd.Recurrence).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bd.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	bd.CreatedAt = createdAt.Time

	return bd, nil
}

// Delete удаляет заблокированную дату
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
		return ErrBlockedDateNotFound
	}

	return nil
}
