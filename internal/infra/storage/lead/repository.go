package lead

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/psqlbuilder"
)

const table = "contact_leads"

var columns = []string{
	"id",
	"name",
	"email",
	"phone",
	"subject",
	"message",
	"stage",
	"estimated_value",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок CRM
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку из формы обратной связи
func (r *Repository) Create(ctx context.Context, l *domain.ContactLead) (*domain.ContactLead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "email", "phone", "subject", "message", "stage", "estimated_value").
		Values(l.Name, l.Email, l.Phone, l.Subject, l.Message, l.Stage, l.EstimatedValue).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ContactLead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return l, nil
}

// List возвращает заявки, новые сверху
func (r *Repository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.ContactLead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)
	if filter.Stage != nil {
		builder = builder.Where(squirrel.Eq{"stage": *filter.Stage})
	}

	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ContactLead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update сохраняет этап и оценку сделки
func (r *Repository) Update(ctx context.Context, l *domain.ContactLead) (*domain.ContactLead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("stage", l.Stage).
		Set("estimated_value", l.EstimatedValue).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": l.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// Delete удаляет заявку
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
		return ErrLeadNotFound
	}

	return nil
}

func scanLead(row rowScanner) (*domain.ContactLead, error) {
	var (
		l                    domain.ContactLead
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Subject,
		&l.Message,
		&l.Stage,
		&l.EstimatedValue,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time
	return &l, nil
}
