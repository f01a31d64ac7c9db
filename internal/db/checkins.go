package db

import (
	"context"
	"fmt"

	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

func (s *SQLStore) CreateCheckIn(ctx context.Context, checkIn *models.CheckIn) error {
	_, err := s.exec(ctx, `
		INSERT INTO check_ins (id, project_id, user_id, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		checkIn.ID, checkIn.ProjectID, checkIn.UserID, checkIn.Note, timeValue(checkIn.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

// ListCheckIns returns a project's ghost log, oldest first. IDs are ULIDs so
// they sort by creation time.
func (s *SQLStore) ListCheckIns(ctx context.Context, projectID string) ([]*models.CheckIn, error) {
	rows, err := s.query(ctx, `
		SELECT id, project_id, user_id, note, created_at
		FROM check_ins
		WHERE project_id = ?
		ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := []*models.CheckIn{}
	for rows.Next() {
		var (
			c         models.CheckIn
			createdAt nullTime
		)
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in row: %w", err)
		}
		c.CreatedAt = createdAt.Time
		checkIns = append(checkIns, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-in rows: %w", err)
	}
	return checkIns, nil
}
