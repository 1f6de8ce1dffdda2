package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

type mockDisputeRepo struct {
	mock.Mock
}

func (m *mockDisputeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) GetOpenByProject(ctx context.Context, projectID uuid.UUID) (*models.Dispute, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispute), args.Error(1)
}

func (m *mockDisputeRepo) Resolve(ctx context.Context, id uuid.UUID, resolution string, resolvedBy uuid.UUID) error {
	args := m.Called(ctx, id, resolution, resolvedBy)
	return args.Error(0)
}

func (m *mockDisputeRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Dispute, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Dispute), args.Error(1)
}

func newDisputeServiceForTest() (*DisputeService, *mockDisputeRepo, *mockProjectRepo) {
	repo := new(mockDisputeRepo)
	projects := new(mockProjectRepo)
	svc := NewDisputeService(repo, projects)
	return svc, repo, projects
}

func TestDisputeService_GetProjectDispute_Success(t *testing.T) {
	svc, repo, projects := newDisputeServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := inProgressProject(clientID, uuid.New(), true)
	project.Status = models.ProjectStatusInDispute
	expected := &models.Dispute{ID: uuid.New(), ProjectID: project.ID, Status: models.DisputeStatusOpen}

	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("GetOpenByProject", ctx, project.ID).Return(expected, nil)

	dispute, err := svc.GetProjectDispute(ctx, project.ID, clientID)
	assert.NoError(t, err)
	assert.Equal(t, expected, dispute)
}

func TestDisputeService_GetProjectDispute_NotParticipant(t *testing.T) {
	svc, repo, projects := newDisputeServiceForTest()
	ctx := context.Background()

	project := inProgressProject(uuid.New(), uuid.New(), true)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.GetProjectDispute(ctx, project.ID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "GetOpenByProject", mock.Anything, mock.Anything)
}

func TestDisputeService_GetProjectDispute_NotFound(t *testing.T) {
	svc, repo, projects := newDisputeServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := inProgressProject(clientID, uuid.New(), false)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("GetOpenByProject", ctx, project.ID).Return(nil, repository.ErrDisputeNotFound)

	_, err := svc.GetProjectDispute(ctx, project.ID, clientID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDisputeService_ResolveDispute_Success(t *testing.T) {
	svc, repo, _ := newDisputeServiceForTest()
	ctx := context.Background()

	adminID := uuid.New()
	disputeID := uuid.New()
	resolved := &models.Dispute{ID: disputeID, Status: models.DisputeStatusResolved}

	repo.On("Resolve", ctx, disputeID, "возврат средств клиенту", adminID).Return(nil)
	repo.On("GetByID", ctx, disputeID).Return(resolved, nil)

	dispute, err := svc.ResolveDispute(ctx, disputeID, adminID, "admin", "возврат средств клиенту")
	assert.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, dispute.Status)
	repo.AssertExpectations(t)
}

func TestDisputeService_ResolveDispute_NotAdmin(t *testing.T) {
	svc, repo, _ := newDisputeServiceForTest()
	ctx := context.Background()

	_, err := svc.ResolveDispute(ctx, uuid.New(), uuid.New(), "client", "возврат средств")
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDisputeService_ResolveDispute_EmptyResolution(t *testing.T) {
	svc, repo, _ := newDisputeServiceForTest()
	ctx := context.Background()

	_, err := svc.ResolveDispute(ctx, uuid.New(), uuid.New(), "admin", "  ")
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDisputeService_ResolveDispute_AlreadyResolved(t *testing.T) {
	svc, repo, _ := newDisputeServiceForTest()
	ctx := context.Background()

	adminID := uuid.New()
	disputeID := uuid.New()
	repo.On("Resolve", ctx, disputeID, "решение", adminID).Return(repository.ErrDisputeNotFound)

	_, err := svc.ResolveDispute(ctx, disputeID, adminID, "admin", "решение")
	assert.True(t, apperror.IsInvalidState(err))
}

func TestDisputeService_ListMyDisputes_DefaultLimit(t *testing.T) {
	svc, repo, _ := newDisputeServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	repo.On("ListByUser", ctx, userID, 20, 0).Return([]models.Dispute{}, nil)

	_, err := svc.ListMyDisputes(ctx, userID, 0, -1)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
