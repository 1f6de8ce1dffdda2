package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-escrow/internal/logger"
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/repository/common"
)

// ErrInsufficientFunds возвращается, когда баланса не хватает на списание.
var ErrInsufficientFunds = errors.New("insufficient funds")

// TransferParams описывает параметры перевода средств по принятому отклику.
type TransferParams struct {
	ProjectID uuid.UUID
	BidID     uuid.UUID
	PayerID   uuid.UUID
	PayeeID   uuid.UUID
	Amount    float64
}

// PaymentRepository отвечает за работу с таблицами wallets и payments.
// Единственная точка мутации балансов: и прямая оплата, и освобождение
// escrow проходят через executeTransfer.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт экземпляр репозитория.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetWallet возвращает кошелёк пользователя, создаёт если не существует.
func (r *PaymentRepository) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING user_id, balance, updated_at
	`
	if err := r.db.GetContext(ctx, &wallet, query, userID); err != nil {
		return nil, fmt.Errorf("payment repository: get wallet %w", err)
	}
	return &wallet, nil
}

// Deposit пополняет кошелёк пользователя.
func (r *PaymentRepository) Deposit(ctx context.Context, userID uuid.UUID, amount float64) (*models.Wallet, error) {
	var wallet models.Wallet
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2, updated_at = NOW()
		RETURNING user_id, balance, updated_at
	`
	if err := r.db.GetContext(ctx, &wallet, query, userID, amount); err != nil {
		return nil, fmt.Errorf("payment repository: deposit %w", err)
	}

	return &wallet, nil
}

// Pay выполняет прямой перевод клиента исполнителю по принятому отклику.
func (r *PaymentRepository) Pay(ctx context.Context, params TransferParams) (*models.Payment, error) {
	var payment *models.Payment
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		p, err := r.executeTransfer(ctx, tx, params)
		if err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			r.recordFailedPayment(ctx, params)
		}
		return nil, err
	}

	return payment, nil
}

// ReleaseEscrow атомарно завершает проект и переводит средства исполнителю.
// Подтверждение клиента, смена статуса проекта, списание и запись платежа
// фиксируются одной транзакцией: при нехватке средств не меняется ничего.
func (r *PaymentRepository) ReleaseEscrow(ctx context.Context, project *models.Project, params TransferParams) (*models.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects SET client_approved = TRUE, status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND freelancer_approved = TRUE AND client_approved = FALSE
	`, project.ID, models.ProjectStatusCompleted, models.ProjectStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("payment repository: release update project %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrProjectStateConflict
	}

	payment, err := r.executeTransfer(ctx, tx, params)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			r.recordFailedPayment(ctx, params)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("payment repository: release commit %w", err)
	}

	project.ClientApproved = true
	project.Status = models.ProjectStatusCompleted
	return payment, nil
}

// executeTransfer списывает средства у плательщика, зачисляет получателю
// и фиксирует платёж. Запись платежа проходит статусы
// PENDING -> PROCESSING -> SUCCESS в рамках транзакции вызывающего.
func (r *PaymentRepository) executeTransfer(ctx context.Context, tx *sqlx.Tx, params TransferParams) (*models.Payment, error) {
	// Баланс плательщика проверяем под блокировкой строки
	var wallet models.Wallet
	err := tx.GetContext(ctx, &wallet, `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1 FOR UPDATE`, params.PayerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("payment repository: lock wallet %w", err)
	}
	if wallet.Balance < params.Amount {
		return nil, ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE wallets SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1
	`, params.PayerID, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment repository: debit payer %w", err)
	}

	// Зачисляем исполнителю
	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2, updated_at = NOW()
	`, params.PayeeID, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment repository: credit payee %w", err)
	}

	var payment models.Payment
	err = tx.GetContext(ctx, &payment, `
		INSERT INTO payments (project_id, bid_id, payer_id, payee_id, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, bid_id, payer_id, payee_id, amount, status, transaction_id, created_at
	`, params.ProjectID, params.BidID, params.PayerID, params.PayeeID, params.Amount, models.PaymentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("payment repository: create payment %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE payments SET status = $2 WHERE id = $1`, payment.ID, models.PaymentStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("payment repository: payment processing %w", err)
	}

	transactionID := uuid.NewString()
	err = tx.GetContext(ctx, &payment, `
		UPDATE payments SET status = $2, transaction_id = $3 WHERE id = $1
		RETURNING id, project_id, bid_id, payer_id, payee_id, amount, status, transaction_id, created_at
	`, payment.ID, models.PaymentStatusSuccess, transactionID)
	if err != nil {
		return nil, fmt.Errorf("payment repository: payment success %w", err)
	}

	return &payment, nil
}

// recordFailedPayment фиксирует неудачную попытку платежа вне транзакции
// перевода, чтобы откат не стёр след попытки.
func (r *PaymentRepository) recordFailedPayment(ctx context.Context, params TransferParams) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (project_id, bid_id, payer_id, payee_id, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, params.ProjectID, params.BidID, params.PayerID, params.PayeeID, params.Amount, models.PaymentStatusFailed)
	if err != nil && logger.Log != nil {
		logger.Log.WithField("project_id", params.ProjectID).
			Warnf("payment repository: не удалось записать неудачный платёж: %v", err)
	}
}

// ListByProject возвращает платежи по проекту.
func (r *PaymentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT * FROM payments WHERE project_id = $1 ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by project %w", err)
	}

	return payments, nil
}

// ListByUser возвращает платежи, где пользователь был плательщиком
// или получателем.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT * FROM payments
		WHERE payer_id = $1 OR payee_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list by user %w", err)
	}

	return payments, nil
}
