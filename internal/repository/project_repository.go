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
	// ErrProjectNotFound возвращается, когда проект не найден.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectStateConflict возвращается, когда проект уже не в том
	// статусе, который требуется для операции.
	ErrProjectStateConflict = errors.New("project state conflict")
)

// ProjectRepository отвечает за работу с таблицей projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт экземпляр репозитория.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create создаёт новый проект в статусе open.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (client_id, title, description, budget, duration, category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		project.ClientID, project.Title, project.Description,
		project.Budget, project.Duration, project.Category, models.ProjectStatusOpen,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return fmt.Errorf("project repository: create %w", err)
	}

	project.Status = models.ProjectStatusOpen
	return nil
}

// GetByID возвращает проект по идентификатору.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return common.GetByID[models.Project](ctx, r.db, "projects", id, ErrProjectNotFound)
}

// List возвращает проекты с фильтрами по статусу и категории.
func (r *ProjectRepository) List(ctx context.Context, status, category string, limit, offset int) ([]models.Project, error) {
	query := `
		SELECT p.*, (SELECT COUNT(*) FROM bids b WHERE b.project_id = p.id) AS bids_count
		FROM projects p
		WHERE 1=1
	`
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	if category != "" {
		query += fmt.Sprintf(" AND p.category = $%d", argIndex)
		args = append(args, category)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("project repository: list %w", err)
	}

	return projects, nil
}

// ListByUser возвращает проекты, где пользователь является клиентом
// или назначенным исполнителем.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.SelectContext(ctx, &projects, `
		SELECT * FROM projects
		WHERE client_id = $1 OR assigned_freelancer_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("project repository: list by user %w", err)
	}

	return projects, nil
}

// MarkFreelancerApproved выставляет флаг freelancer_approved.
// Срабатывает только если проект в работе и флаг ещё не выставлен.
func (r *ProjectRepository) MarkFreelancerApproved(ctx context.Context, projectID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE projects SET freelancer_approved = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND freelancer_approved = FALSE
	`, projectID, models.ProjectStatusInProgress)
	if err != nil {
		return fmt.Errorf("project repository: mark freelancer approved %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("project repository: mark freelancer approved rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrProjectStateConflict
	}

	return nil
}
