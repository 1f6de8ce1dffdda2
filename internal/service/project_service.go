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

// ProjectRepository описывает взаимодействие сервиса с хранилищем проектов.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, status, category string, limit, offset int) ([]models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	MarkFreelancerApproved(ctx context.Context, projectID uuid.UUID) error
}

// AcceptedBidReader возвращает принятый отклик по проекту.
type AcceptedBidReader interface {
	GetAcceptedByProject(ctx context.Context, projectID uuid.UUID) (*models.Bid, error)
}

// EscrowReleaser атомарно завершает проект и переводит средства.
type EscrowReleaser interface {
	ReleaseEscrow(ctx context.Context, project *models.Project, params repository.TransferParams) (*models.Payment, error)
}

// DisputeOpener создаёт спор и переводит проект в in_dispute.
type DisputeOpener interface {
	Open(ctx context.Context, dispute *models.Dispute) error
}

// Notifier доставляет событие пользователю. Доставка best-effort:
// ошибки уведомлений не влияют на исход операции.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event string, data map[string]interface{})
}

// ProjectService содержит бизнес-логику жизненного цикла проекта,
// включая завершение работы и освобождение escrow.
type ProjectService struct {
	repo     ProjectRepository
	bids     AcceptedBidReader
	payments EscrowReleaser
	disputes DisputeOpener
	notifier Notifier
}

// NewProjectService создаёт сервис проектов.
func NewProjectService(repo ProjectRepository, bids AcceptedBidReader, payments EscrowReleaser, disputes DisputeOpener) *ProjectService {
	return &ProjectService{
		repo:     repo,
		bids:     bids,
		payments: payments,
		disputes: disputes,
	}
}

// SetNotifier устанавливает доставку уведомлений.
func (s *ProjectService) SetNotifier(n Notifier) {
	s.notifier = n
}

// CreateProjectInput описывает входные данные нового проекта.
type CreateProjectInput struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	Budget      float64
	Duration    int
	Category    string
}

// CreateProject создаёт проект в статусе open.
func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if err := validation.ValidateProjectTitle(in.Title); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateProjectDescription(in.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBudget(in.Budget); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDuration(in.Duration); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project := &models.Project{
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Duration:    in.Duration,
		Category:    in.Category,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject возвращает проект по идентификатору.
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListProjects возвращает проекты с фильтрами и пагинацией.
func (s *ProjectService) ListProjects(ctx context.Context, status, category string, limit, offset int) ([]models.Project, error) {
	if status != "" {
		if _, ok := models.ValidProjectStatuses[status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус проекта")
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, status, category, limit, offset)
}

// ListMyProjects возвращает проекты пользователя как клиента и как исполнителя.
func (s *ProjectService) ListMyProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SubmitCompletion отмечает работу как выполненную исполнителем.
// Проверки: действует назначенный исполнитель, проект в работе,
// работа ещё не была отправлена.
func (s *ProjectService) SubmitCompletion(ctx context.Context, projectID, actorID uuid.UUID) (*models.Project, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsAssignedTo(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отметить работу выполненной может только назначенный исполнитель")
	}
	if project.Status != models.ProjectStatusInProgress {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "проект не находится в работе")
	}
	if project.FreelancerApproved {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "работа уже отмечена как выполненная")
	}

	if err := s.repo.MarkFreelancerApproved(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectStateConflict) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "проект не находится в работе")
		}
		return nil, err
	}

	project.FreelancerApproved = true

	if s.notifier != nil {
		s.notifier.Notify(ctx, project.ClientID, models.NotificationWorkSubmitted, map[string]interface{}{
			"project_id": project.ID,
			"title":      project.Title,
		})
	}

	return project, nil
}

// ApproveCompletion принимает работу и освобождает escrow.
// Смена статуса проекта, списание с кошелька клиента, зачисление
// исполнителю и запись платежа атомарны: при нехватке средств
// ни одно изменение не фиксируется.
func (s *ProjectService) ApproveCompletion(ctx context.Context, projectID, actorID uuid.UUID) (*models.Project, *models.Payment, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	if !project.IsOwnedBy(actorID) {
		return nil, nil, apperror.New(apperror.ErrCodeForbidden, "принять работу может только владелец проекта")
	}
	if !project.FreelancerApproved {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "исполнитель ещё не отметил работу выполненной")
	}
	if project.ClientApproved {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "работа уже принята")
	}
	if project.Status != models.ProjectStatusInProgress {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "проект не находится в работе")
	}

	bid, err := s.bids.GetAcceptedByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "по проекту нет принятого отклика")
		}
		return nil, nil, err
	}

	payment, err := s.payments.ReleaseEscrow(ctx, project, repository.TransferParams{
		ProjectID: project.ID,
		BidID:     bid.ID,
		PayerID:   project.ClientID,
		PayeeID:   bid.FreelancerID,
		Amount:    bid.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return nil, nil, apperror.ErrInsufficientFunds
		case errors.Is(err, repository.ErrProjectStateConflict):
			return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "работа уже принята")
		}
		return nil, nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, bid.FreelancerID, models.NotificationWorkApproved, map[string]interface{}{
			"project_id": project.ID,
			"title":      project.Title,
		})
		s.notifier.Notify(ctx, bid.FreelancerID, models.NotificationPaymentReceived, map[string]interface{}{
			"project_id": project.ID,
			"payment_id": payment.ID,
			"amount":     payment.Amount,
		})
	}

	return project, payment, nil
}

// RejectCompletion отклоняет выполненную работу и открывает спор.
func (s *ProjectService) RejectCompletion(ctx context.Context, projectID, actorID uuid.UUID, reason string) (*models.Dispute, error) {
	if err := validation.ValidateDisputeReason(reason); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отклонить работу может только владелец проекта")
	}
	if !project.FreelancerApproved {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "исполнитель ещё не отметил работу выполненной")
	}
	if project.ClientApproved {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "работа уже принята")
	}
	if project.Status != models.ProjectStatusInProgress {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "проект не находится в работе")
	}

	dispute := &models.Dispute{
		ProjectID: projectID,
		RaisedBy:  actorID,
		Reason:    reason,
	}

	if err := s.disputes.Open(ctx, dispute); err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectStateConflict):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "проект не находится в работе")
		case errors.Is(err, repository.ErrDisputeExists):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "по проекту уже открыт спор")
		}
		return nil, err
	}

	if s.notifier != nil && project.AssignedFreelancerID != nil {
		s.notifier.Notify(ctx, *project.AssignedFreelancerID, models.NotificationDisputeOpened, map[string]interface{}{
			"project_id": project.ID,
			"dispute_id": dispute.ID,
			"reason":     dispute.Reason,
		})
	}

	return dispute, nil
}
