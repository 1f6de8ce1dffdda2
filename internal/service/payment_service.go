package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
	"github.com/ignatzorin/freelance-escrow/internal/validation"
)

// PaymentRepository описывает взаимодействие сервиса с кошельками и платежами.
type PaymentRepository interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount float64) (*models.Wallet, error)
	Pay(ctx context.Context, params repository.TransferParams) (*models.Payment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error)
}

// BidReader возвращает отклик по идентификатору.
type BidReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
}

// PaymentService содержит бизнес-логику кошелька и прямой оплаты.
type PaymentService struct {
	repo     PaymentRepository
	projects ProjectReader
	bids     BidReader
	notifier Notifier
}

// NewPaymentService создаёт сервис платежей.
func NewPaymentService(repo PaymentRepository, projects ProjectReader, bids BidReader) *PaymentService {
	return &PaymentService{
		repo:     repo,
		projects: projects,
		bids:     bids,
	}
}

// SetNotifier устанавливает доставку уведомлений.
func (s *PaymentService) SetNotifier(n Notifier) {
	s.notifier = n
}

// GetBalance возвращает кошелёк пользователя.
func (s *PaymentService) GetBalance(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return s.repo.GetWallet(ctx, userID)
}

// Deposit пополняет кошелёк. Сумма одного пополнения ограничена
// диапазоном [1, 10000]; накопленный баланс не ограничен.
func (s *PaymentService) Deposit(ctx context.Context, userID uuid.UUID, amount float64) (*models.Wallet, error) {
	if err := validation.ValidateDepositAmount(amount); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	return s.repo.Deposit(ctx, userID, amount)
}

// PayInput описывает прямую оплату принятого отклика.
type PayInput struct {
	ProjectID uuid.UUID
	BidID     uuid.UUID
	PayerID   uuid.UUID
	Amount    float64
}

// Pay выполняет прямую оплату принятого отклика до завершения работы.
// Списание, зачисление и запись платежа атомарны.
func (s *PaymentService) Pay(ctx context.Context, in PayInput) (*models.Payment, error) {
	if err := validation.ValidatePaymentAmount(in.Amount); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	if !project.IsOwnedBy(in.PayerID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "оплатить отклик может только владелец проекта")
	}

	bid, err := s.bids.GetByID(ctx, in.BidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, err
	}

	if bid.ProjectID != in.ProjectID {
		return nil, apperror.New(apperror.ErrCodeValidation, "отклик не относится к этому проекту")
	}
	if bid.Status != models.BidStatusAccepted {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "оплатить можно только принятый отклик")
	}

	// По прямому пути у проекта не более одного успешного платежа
	existing, err := s.repo.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Status == models.PaymentStatusSuccess {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "проект уже оплачен")
		}
	}

	payment, err := s.repo.Pay(ctx, repository.TransferParams{
		ProjectID: in.ProjectID,
		BidID:     in.BidID,
		PayerID:   in.PayerID,
		PayeeID:   bid.FreelancerID,
		Amount:    in.Amount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, apperror.ErrInsufficientFunds
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, bid.FreelancerID, models.NotificationPaymentReceived, map[string]interface{}{
			"project_id": project.ID,
			"payment_id": payment.ID,
			"amount":     payment.Amount,
		})
	}

	return payment, nil
}

// ListProjectPayments возвращает платежи по проекту. Историю видят
// только участники сделки.
func (s *PaymentService) ListProjectPayments(ctx context.Context, projectID, actorID uuid.UUID) ([]models.Payment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	if !project.IsOwnedBy(actorID) && !project.IsAssignedTo(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "история платежей доступна только участникам проекта")
	}

	return s.repo.ListByProject(ctx, projectID)
}

// ListMyPayments возвращает платежи пользователя с пагинацией.
func (s *PaymentService) ListMyPayments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListByUser(ctx, userID, limit, offset)
}
