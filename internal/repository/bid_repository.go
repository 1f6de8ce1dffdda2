package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/repository/common"
)

var (
	// ErrBidNotFound возвращается, когда отклик не найден.
	ErrBidNotFound = errors.New("bid not found")
	// ErrBidNotPending возвращается при попытке изменить отклик,
	// который уже не в статусе pending.
	ErrBidNotPending = errors.New("bid is not pending")
	// ErrProjectNotOpen возвращается при попытке принять отклик
	// по проекту, который уже не открыт.
	ErrProjectNotOpen = errors.New("project is not open")
	// ErrDuplicateBid возвращается, когда фрилансер уже откликался на проект.
	ErrDuplicateBid = errors.New("bid already exists for this freelancer")
)

// BidRepository отвечает за работу с таблицей bids.
type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт экземпляр репозитория.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create создаёт новый отклик в статусе pending.
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM bids WHERE project_id = $1 AND freelancer_id = $2)
	`, bid.ProjectID, bid.FreelancerID)
	if err != nil {
		return fmt.Errorf("bid repository: check duplicate %w", err)
	}
	if exists {
		return ErrDuplicateBid
	}

	query := `
		INSERT INTO bids (project_id, freelancer_id, amount, delivery_time, proposal, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		bid.ProjectID, bid.FreelancerID, bid.Amount, bid.DeliveryTime, bid.Proposal, models.BidStatusPending,
	).Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt); err != nil {
		return fmt.Errorf("bid repository: create %w", err)
	}

	bid.Status = models.BidStatusPending
	return nil
}

// GetByID возвращает отклик по идентификатору.
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return common.GetByID[models.Bid](ctx, r.db, "bids", id, ErrBidNotFound)
}

// ListByProject возвращает отклики по проекту.
func (r *BidRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.SelectContext(ctx, &bids, `
		SELECT * FROM bids WHERE project_id = $1 ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: list by project %w", err)
	}

	return bids, nil
}

// GetAcceptedByProject возвращает принятый отклик по проекту.
func (r *BidRepository) GetAcceptedByProject(ctx context.Context, projectID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.GetContext(ctx, &bid, `
		SELECT * FROM bids WHERE project_id = $1 AND status = $2
	`, projectID, models.BidStatusAccepted)
	if err != nil {
		return nil, ErrBidNotFound
	}

	return &bid, nil
}

// Accept принимает отклик и переводит проект в работу.
// Обе записи меняются в одной транзакции: отклик становится accepted,
// проект получает исполнителя и статус in_progress. Инвариант «не более
// одного принятого отклика на проект» обеспечивается условием на статус
// проекта: повторное принятие не находит открытый проект.
func (r *BidRepository) Accept(ctx context.Context, bid *models.Bid) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE bids SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, bid.ID, models.BidStatusAccepted, models.BidStatusPending)
	if err != nil {
		return fmt.Errorf("bid repository: accept bid %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBidNotPending
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE projects SET status = $2, assigned_freelancer_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`, bid.ProjectID, models.ProjectStatusInProgress, bid.FreelancerID, models.ProjectStatusOpen)
	if err != nil {
		return fmt.Errorf("bid repository: accept update project %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProjectNotOpen
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bid repository: accept commit %w", err)
	}

	bid.Status = models.BidStatusAccepted
	return nil
}

// Reject отклоняет отклик без побочных эффектов на проект.
func (r *BidRepository) Reject(ctx context.Context, bidID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bids SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, bidID, models.BidStatusRejected, models.BidStatusPending)
	if err != nil {
		return fmt.Errorf("bid repository: reject %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBidNotPending
	}

	return nil
}
