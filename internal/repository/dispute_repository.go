package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/freelance-escrow/internal/models"
)

var (
	// ErrDisputeNotFound возвращается, когда спор не найден.
	ErrDisputeNotFound = errors.New("dispute not found")
	// ErrDisputeExists возвращается при повторном открытии спора по проекту.
	ErrDisputeExists = errors.New("dispute already exists for this project")
)

// DisputeRepository отвечает за работу с таблицей disputes.
type DisputeRepository struct {
	db *sqlx.DB
}

// NewDisputeRepository создаёт экземпляр репозитория.
func NewDisputeRepository(db *sqlx.DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

// Open создаёт спор и переводит проект в статус in_dispute.
// Обе записи меняются в одной транзакции: если проект уже не в работе,
// спор не создаётся.
func (r *DisputeRepository) Open(ctx context.Context, dispute *models.Dispute) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, dispute.ProjectID, models.ProjectStatusInDispute, models.ProjectStatusInProgress)
	if err != nil {
		return fmt.Errorf("dispute repository: open update project %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProjectStateConflict
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO disputes (project_id, raised_by, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, dispute.ProjectID, dispute.RaisedBy, dispute.Reason, models.DisputeStatusOpen).
		Scan(&dispute.ID, &dispute.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDisputeExists
		}
		return fmt.Errorf("dispute repository: open create %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dispute repository: open commit %w", err)
	}

	dispute.Status = models.DisputeStatusOpen
	return nil
}

// GetByID возвращает спор по идентификатору.
func (r *DisputeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := r.db.GetContext(ctx, &dispute, `SELECT * FROM disputes WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDisputeNotFound
		}
		return nil, fmt.Errorf("dispute repository: get by id %w", err)
	}

	return &dispute, nil
}

// GetOpenByProject возвращает открытый спор по проекту.
func (r *DisputeRepository) GetOpenByProject(ctx context.Context, projectID uuid.UUID) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.db.GetContext(ctx, &dispute, `
		SELECT * FROM disputes WHERE project_id = $1 AND status = $2
	`, projectID, models.DisputeStatusOpen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDisputeNotFound
		}
		return nil, fmt.Errorf("dispute repository: get open by project %w", err)
	}

	return &dispute, nil
}

// Resolve закрывает спор с текстом решения.
func (r *DisputeRepository) Resolve(ctx context.Context, id uuid.UUID, resolution string, resolvedBy uuid.UUID) error {
	now := time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE disputes SET status = $2, resolution = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1 AND status = $6
	`, id, models.DisputeStatusResolved, resolution, resolvedBy, now, models.DisputeStatusOpen)
	if err != nil {
		return fmt.Errorf("dispute repository: resolve %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrDisputeNotFound
	}

	return nil
}

// ListByUser возвращает споры по проектам, где пользователь является
// клиентом или назначенным исполнителем.
func (r *DisputeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	var disputes []models.Dispute
	err := r.db.SelectContext(ctx, &disputes, `
		SELECT d.* FROM disputes d
		JOIN projects p ON d.project_id = p.id
		WHERE p.client_id = $1 OR p.assigned_freelancer_id = $1
		ORDER BY d.created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dispute repository: list by user %w", err)
	}

	return disputes, nil
}
