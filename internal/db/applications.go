package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

const applicationColumns = `
	id, project_id, project_name, owner_id, owner_email, applicant_id, applicant_name,
	applicant_email, reason, experience, skills, portfolio, status, created_at, updated_at`

func (s *SQLStore) CreateApplication(ctx context.Context, app *models.Application) error {
	_, err := s.exec(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.ProjectID, app.ProjectName, app.OwnerID, app.OwnerEmail, app.ApplicantID,
		app.ApplicantName, app.ApplicantEmail, app.Reason, app.Experience, app.Skills, app.Portfolio,
		string(app.Status), timeValue(app.CreatedAt), timeValue(app.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (s *SQLStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	row := s.queryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("application", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// UpdateApplication persists a status change
func (s *SQLStore) UpdateApplication(ctx context.Context, app *models.Application) error {
	result, err := s.exec(ctx, `
		UPDATE applications SET owner_id = ?, owner_email = ?, status = ?, updated_at = ?
		WHERE id = ?`, app.OwnerID, app.OwnerEmail, string(app.Status), timeValue(app.UpdatedAt), app.ID)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return requireAffected(result, "application", app.ID)
}

// ListApplications returns matching applications, newest first
func (s *SQLStore) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1 = 1`
	var args []any

	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.ApplicantID != "" {
		query += ` AND applicant_id = ?`
		args = append(args, filter.ApplicantID)
	}
	if filter.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app                  models.Application
		status               string
		createdAt, updatedAt nullTime
	)

	err := row.Scan(
		&app.ID, &app.ProjectID, &app.ProjectName, &app.OwnerID, &app.OwnerEmail, &app.ApplicantID,
		&app.ApplicantName, &app.ApplicantEmail, &app.Reason, &app.Experience, &app.Skills,
		&app.Portfolio, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationStatus(status)
	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}
