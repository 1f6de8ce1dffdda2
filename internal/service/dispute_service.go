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

// DisputeRepository описывает взаимодействие сервиса с хранилищем споров.
type DisputeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	GetOpenByProject(ctx context.Context, projectID uuid.UUID) (*models.Dispute, error)
	Resolve(ctx context.Context, id uuid.UUID, resolution string, resolvedBy uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error)
}

// DisputeService предоставляет просмотр и административное закрытие споров.
// Открытие спора происходит через отклонение работы в ProjectService.
type DisputeService struct {
	repo     DisputeRepository
	projects ProjectReader
}

// NewDisputeService создаёт сервис споров.
func NewDisputeService(repo DisputeRepository, projects ProjectReader) *DisputeService {
	return &DisputeService{
		repo:     repo,
		projects: projects,
	}
}

// GetProjectDispute возвращает открытый спор по проекту.
// Спор видят только участники сделки.
func (s *DisputeService) GetProjectDispute(ctx context.Context, projectID, actorID uuid.UUID) (*models.Dispute, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}

	if !project.IsOwnedBy(actorID) && !project.IsAssignedTo(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "спор доступен только участникам проекта")
	}

	dispute, err := s.repo.GetOpenByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrDisputeNotFound) {
			return nil, apperror.ErrDisputeNotFound
		}
		return nil, err
	}

	return dispute, nil
}

// ListMyDisputes возвращает споры по сделкам пользователя.
func (s *DisputeService) ListMyDisputes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// ResolveDispute закрывает спор с текстом решения. Операция доступна
// только администратору; дальнейшая судьба проекта решается отдельно.
func (s *DisputeService) ResolveDispute(ctx context.Context, disputeID, actorID uuid.UUID, actorRole, resolution string) (*models.Dispute, error) {
	if actorRole != "admin" {
		return nil, apperror.New(apperror.ErrCodeForbidden, "закрыть спор может только администратор")
	}
	if err := validation.ValidateNonEmpty("решение по спору", resolution); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	if err := s.repo.Resolve(ctx, disputeID, resolution, actorID); err != nil {
		if errors.Is(err, repository.ErrDisputeNotFound) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "спор не найден или уже закрыт")
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, disputeID)
}
