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

type mockBidRepo struct {
	mock.Mock
}

func (m *mockBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) Accept(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *mockBidRepo) Reject(ctx context.Context, bidID uuid.UUID) error {
	args := m.Called(ctx, bidID)
	return args.Error(0)
}

func newBidServiceForTest() (*BidService, *mockBidRepo, *mockProjectRepo) {
	repo := new(mockBidRepo)
	projects := new(mockProjectRepo)
	svc := NewBidService(repo, projects)
	return svc, repo, projects
}

func openProject(clientID uuid.UUID) *models.Project {
	return &models.Project{
		ID:       uuid.New(),
		ClientID: clientID,
		Title:    "Вёрстка лендинга",
		Status:   models.ProjectStatusOpen,
	}
}

func TestBidService_CreateBid_Success(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	project := openProject(uuid.New())
	freelancerID := uuid.New()

	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(nil)

	bid, err := svc.CreateBid(ctx, CreateBidInput{
		ProjectID:    project.ID,
		FreelancerID: freelancerID,
		Amount:       300,
		DeliveryTime: 7,
		Proposal:     "Сделаю быстро и качественно",
	})
	assert.NoError(t, err)
	assert.Equal(t, freelancerID, bid.FreelancerID)
	repo.AssertExpectations(t)
}

func TestBidService_CreateBid_OwnProject(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := openProject(clientID)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.CreateBid(ctx, CreateBidInput{
		ProjectID:    project.ID,
		FreelancerID: clientID,
		Amount:       300,
		DeliveryTime: 7,
		Proposal:     "Сделаю быстро и качественно",
	})
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_CreateBid_ProjectNotOpen(t *testing.T) {
	svc, _, projects := newBidServiceForTest()
	ctx := context.Background()

	project := openProject(uuid.New())
	project.Status = models.ProjectStatusInProgress
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.CreateBid(ctx, CreateBidInput{
		ProjectID:    project.ID,
		FreelancerID: uuid.New(),
		Amount:       300,
		DeliveryTime: 7,
		Proposal:     "Сделаю быстро и качественно",
	})
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_CreateBid_Duplicate(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	project := openProject(uuid.New())
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(repository.ErrDuplicateBid)

	_, err := svc.CreateBid(ctx, CreateBidInput{
		ProjectID:    project.ID,
		FreelancerID: uuid.New(),
		Amount:       300,
		DeliveryTime: 7,
		Proposal:     "Сделаю быстро и качественно",
	})
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_CreateBid_InvalidAmount(t *testing.T) {
	svc, _, _ := newBidServiceForTest()
	ctx := context.Background()

	_, err := svc.CreateBid(ctx, CreateBidInput{
		ProjectID:    uuid.New(),
		FreelancerID: uuid.New(),
		Amount:       0,
		DeliveryTime: 7,
		Proposal:     "Сделаю быстро и качественно",
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestBidService_UpdateBidStatus_AcceptSuccess(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	notifier := new(mockNotifier)
	svc.SetNotifier(notifier)
	ctx := context.Background()

	clientID := uuid.New()
	project := openProject(clientID)
	bid := &models.Bid{
		ID:           uuid.New(),
		ProjectID:    project.ID,
		FreelancerID: uuid.New(),
		Status:       models.BidStatusPending,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("Accept", ctx, bid).Run(func(args mock.Arguments) {
		b := args.Get(1).(*models.Bid)
		b.Status = models.BidStatusAccepted
	}).Return(nil)
	notifier.On("Notify", ctx, bid.FreelancerID, models.NotificationBidAccepted, mock.Anything).Return()

	got, err := svc.UpdateBidStatus(ctx, bid.ID, clientID, models.BidStatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusAccepted, got.Status)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestBidService_UpdateBidStatus_RejectSuccess(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := openProject(clientID)
	bid := &models.Bid{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Status:    models.BidStatusPending,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("Reject", ctx, bid.ID).Return(nil)

	got, err := svc.UpdateBidStatus(ctx, bid.ID, clientID, models.BidStatusRejected)
	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusRejected, got.Status)
}

func TestBidService_UpdateBidStatus_NotOwner(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	project := openProject(uuid.New())
	bid := &models.Bid{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Status:    models.BidStatusPending,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.UpdateBidStatus(ctx, bid.ID, uuid.New(), models.BidStatusAccepted)
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestBidService_UpdateBidStatus_AlreadyReviewed(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := openProject(clientID)
	bid := &models.Bid{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Status:    models.BidStatusRejected,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.UpdateBidStatus(ctx, bid.ID, clientID, models.BidStatusAccepted)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_UpdateBidStatus_ProjectNotOpen(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	// По проекту уже принят другой отклик
	clientID := uuid.New()
	project := openProject(clientID)
	project.Status = models.ProjectStatusInProgress
	bid := &models.Bid{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Status:    models.BidStatusPending,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.UpdateBidStatus(ctx, bid.ID, clientID, models.BidStatusAccepted)
	assert.True(t, apperror.IsInvalidState(err))
	repo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestBidService_UpdateBidStatus_ConcurrentAccept(t *testing.T) {
	svc, repo, projects := newBidServiceForTest()
	ctx := context.Background()

	clientID := uuid.New()
	project := openProject(clientID)
	bid := &models.Bid{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Status:    models.BidStatusPending,
	}

	repo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	repo.On("Accept", ctx, bid).Return(repository.ErrProjectNotOpen)

	_, err := svc.UpdateBidStatus(ctx, bid.ID, clientID, models.BidStatusAccepted)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestBidService_UpdateBidStatus_InvalidStatus(t *testing.T) {
	svc, repo, _ := newBidServiceForTest()
	ctx := context.Background()

	_, err := svc.UpdateBidStatus(ctx, uuid.New(), uuid.New(), "pending")
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
