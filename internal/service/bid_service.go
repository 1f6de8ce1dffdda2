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

// BidRepository описывает взаимодействие сервиса с хранилищем откликов.
type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error)
	Accept(ctx context.Context, bid *models.Bid) error
	Reject(ctx context.Context, bidID uuid.UUID) error
}

// ProjectReader возвращает проект по идентификатору.
type ProjectReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// BidService содержит бизнес-логику откликов: создание и выбор
// единственного исполнителя по проекту.
type BidService struct {
	repo     BidRepository
	projects ProjectReader
	notifier Notifier
}

// NewBidService создаёт сервис откликов.
func NewBidService(repo BidRepository, projects ProjectReader) *BidService {
	return &BidService{
		repo:     repo,
		projects: projects,
	}
}

// SetNotifier устанавливает доставку уведомлений.
func (s *BidService) SetNotifier(n Notifier) {
	s.notifier = n
}

// CreateBidInput описывает входные данные отклика.
type CreateBidInput struct {
	ProjectID    uuid.UUID
	FreelancerID uuid.UUID
	Amount       float64
	DeliveryTime int
	Proposal     string
}

// CreateBid создаёт отклик на открытый проект.
func (s *BidService) CreateBid(ctx context.Context, in CreateBidInput) (*models.Bid, error) {
	if err := validation.ValidateBidAmount(in.Amount); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBidProposal(in.Proposal); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if in.DeliveryTime <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "срок выполнения должен быть положительным")
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	if project.Status != models.ProjectStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "проект закрыт для откликов")
	}
	if project.IsOwnedBy(in.FreelancerID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя откликнуться на собственный проект")
	}

	bid := &models.Bid{
		ProjectID:    in.ProjectID,
		FreelancerID: in.FreelancerID,
		Amount:       in.Amount,
		DeliveryTime: in.DeliveryTime,
		Proposal:     in.Proposal,
	}

	if err := s.repo.Create(ctx, bid); err != nil {
		if errors.Is(err, repository.ErrDuplicateBid) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "вы уже откликнулись на этот проект")
		}
		return nil, err
	}

	return bid, nil
}

// ListProjectBids возвращает отклики по проекту.
func (s *BidService) ListProjectBids(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	return s.repo.ListByProject(ctx, projectID)
}

// UpdateBidStatus принимает или отклоняет отклик. Принять или отклонить
// отклик может только владелец проекта; отклик должен быть pending.
// Принятие назначает исполнителя и переводит проект в работу,
// по проекту может быть принят не более одного отклика.
func (s *BidService) UpdateBidStatus(ctx context.Context, bidID, actorID uuid.UUID, status string) (*models.Bid, error) {
	if status != models.BidStatusAccepted && status != models.BidStatusRejected {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус отклика")
	}

	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, bid.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	if !project.IsOwnedBy(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "изменять статус отклика может только владелец проекта")
	}
	if bid.Status != models.BidStatusPending {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "отклик уже рассмотрен")
	}

	if status == models.BidStatusRejected {
		if err := s.repo.Reject(ctx, bidID); err != nil {
			if errors.Is(err, repository.ErrBidNotPending) {
				return nil, apperror.New(apperror.ErrCodeInvalidState, "отклик уже рассмотрен")
			}
			return nil, err
		}
		bid.Status = models.BidStatusRejected
		return bid, nil
	}

	if project.Status != models.ProjectStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "проект уже не открыт")
	}

	if err := s.repo.Accept(ctx, bid); err != nil {
		switch {
		case errors.Is(err, repository.ErrBidNotPending):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "отклик уже рассмотрен")
		case errors.Is(err, repository.ErrProjectNotOpen):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "проект уже не открыт")
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, bid.FreelancerID, models.NotificationBidAccepted, map[string]interface{}{
			"project_id": project.ID,
			"bid_id":     bid.ID,
			"title":      project.Title,
		})
	}

	return bid, nil
}
