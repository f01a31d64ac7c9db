package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

const projectColumns = `
	id, title, description, repo_url, repo_full_name, ghost_log, owner_id,
	owner_ghost_name, creator_id, creator_ghost_name, health_score_json, status,
	parent_id, generation, dead_man_switch_months, expiry_date, last_check_in, repo_info_json,
	haunters_json, created_at, updated_at`

// CreateProject inserts a project. A live project for the same repository is a conflict.
func (s *SQLStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project cannot be nil")
	}

	existing, err := s.GetProjectByRepo(ctx, project.RepoFullName)
	if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError(
			fmt.Sprintf("repository %s is already in the vault", project.RepoFullName), nil)
	}

	scoreJSON, infoJSON, hauntersJSON, err := marshalProjectDocs(project)
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Title, project.Description, project.RepoURL, project.RepoFullName,
		project.GhostLog, project.OwnerID, project.OwnerGhostName, project.CreatorID,
		project.CreatorGhostName, scoreJSON, string(project.Status),
		project.ParentID, project.Generation, project.DeadManSwitchMonths,
		timeValue(project.ExpiryDate), timeValue(project.LastCheckIn), infoJSON, hauntersJSON,
		timeValue(project.CreatedAt), timeValue(project.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject retrieves a live project by its ID
func (s *SQLStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ? AND deleted_at IS NULL`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("project", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetProjectByRepo retrieves a live project by its owner/name
func (s *SQLStore) GetProjectByRepo(ctx context.Context, fullName string) (*models.Project, error) {
	row := s.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE repo_full_name = ? AND deleted_at IS NULL`, fullName)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("project", fullName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by repository: %w", err)
	}
	return project, nil
}

// UpdateProject overwrites every mutable field of a live project
func (s *SQLStore) UpdateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project cannot be nil")
	}

	scoreJSON, infoJSON, hauntersJSON, err := marshalProjectDocs(project)
	if err != nil {
		return err
	}

	result, err := s.exec(ctx, `
		UPDATE projects SET
			title = ?, description = ?, ghost_log = ?, owner_id = ?, owner_ghost_name = ?,
			health_score_json = ?, status = ?, parent_id = ?, generation = ?,
			dead_man_switch_months = ?, expiry_date = ?, last_check_in = ?,
			repo_info_json = ?, haunters_json = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		project.Title, project.Description, project.GhostLog, project.OwnerID, project.OwnerGhostName,
		scoreJSON, string(project.Status), project.ParentID, project.Generation,
		project.DeadManSwitchMonths, timeValue(project.ExpiryDate), timeValue(project.LastCheckIn),
		infoJSON, hauntersJSON, timeValue(project.UpdatedAt), project.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return requireAffected(result, "project", project.ID)
}

// DeleteProject soft deletes a project
func (s *SQLStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.exec(ctx, `
		UPDATE projects SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return requireAffected(result, "project", id)
}

// ListProjects loads live projects and applies the filter in Go so both
// dialects order results identically.
func (s *SQLStore) ListProjects(ctx context.Context, filter models.ProjectFilter, now time.Time) ([]*models.Project, error) {
	rows, err := s.query(ctx, `SELECT `+projectColumns+` FROM projects WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return FilterProjects(projects, filter, now), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p                      models.Project
		status                 string
		scoreJSON              sql.NullString
		infoJSON, hauntersJSON string
		expiry, lastCheckIn    nullTime
		createdAt, updatedAt   nullTime
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.RepoURL, &p.RepoFullName, &p.GhostLog, &p.OwnerID,
		&p.OwnerGhostName, &p.CreatorID, &p.CreatorGhostName, &scoreJSON, &status,
		&p.ParentID, &p.Generation, &p.DeadManSwitchMonths, &expiry, &lastCheckIn, &infoJSON,
		&hauntersJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = models.ProjectStatus(status)
	p.ExpiryDate = expiry.Time
	p.LastCheckIn = lastCheckIn.Time
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	if scoreJSON.Valid && scoreJSON.String != "" {
		var score health.HealthScore
		if err := json.Unmarshal([]byte(scoreJSON.String), &score); err != nil {
			return nil, fmt.Errorf("failed to unmarshal health score: %w", err)
		}
		p.HealthScore = &score
	}
	if err := json.Unmarshal([]byte(infoJSON), &p.RepoInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal repo info: %w", err)
	}
	if err := json.Unmarshal([]byte(hauntersJSON), &p.Haunters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal haunters: %w", err)
	}
	if p.Haunters == nil {
		p.Haunters = []models.Haunter{}
	}

	return &p, nil
}

func marshalProjectDocs(p *models.Project) (score any, info, haunters string, err error) {
	if p.HealthScore != nil {
		b, err := json.Marshal(p.HealthScore)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to marshal health score: %w", err)
		}
		score = string(b)
	}

	b, err := json.Marshal(p.RepoInfo)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to marshal repo info: %w", err)
	}
	info = string(b)

	list := p.Haunters
	if list == nil {
		list = []models.Haunter{}
	}
	b, err = json.Marshal(list)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to marshal haunters: %w", err)
	}
	haunters = string(b)

	return score, info, haunters, nil
}

func requireAffected(result sql.Result, resource, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewResourceNotFoundError(resource, id)
	}
	return nil
}
