package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"promptpilot_server/internal/types"
)

// CreateProject inserts a new project row and assigns its identifier and
// timestamps. The caller supplies name, prompt, owner, status, app type.
func (s *Store) CreateProject(ctx context.Context, p *types.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name required")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("user id required")
	}
	if p.AppType == "" {
		p.AppType = types.AppTypeWeb
	}
	if p.Status == "" {
		p.Status = types.StatusGenerating
	}

	p.ID = newID("proj")
	now := nowUnix()
	p.CreatedAt = fromUnix(now)
	p.UpdatedAt = fromUnix(now)

	const q = `
INSERT INTO projects (id, name, description, prompt, user_id, status, app_type, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := s.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Prompt, p.UserID, p.Status, p.AppType, now, now)
	return err
}

// GetProject returns one project owned by userID.
func (s *Store) GetProject(ctx context.Context, userID, projectID string) (*types.Project, error) {
	const q = `
SELECT id, name, description, prompt, user_id, status, app_type, created_at, updated_at
FROM projects
WHERE id = $1 AND user_id = $2;
`
	var p types.Project
	var created, updated int64
	err := s.db.QueryRowContext(ctx, q, projectID, userID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Prompt, &p.UserID, &p.Status, &p.AppType, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = fromUnix(created)
	p.UpdatedAt = fromUnix(updated)
	return &p, nil
}

// ListProjects returns all projects for the owner, most recently updated
// first.
func (s *Store) ListProjects(ctx context.Context, userID string) ([]types.Project, error) {
	const q = `
SELECT id, name, description, prompt, user_id, status, app_type, created_at, updated_at
FROM projects
WHERE user_id = $1
ORDER BY updated_at DESC;
`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]types.Project, 0, 16)
	for rows.Next() {
		var p types.Project
		var created, updated int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Prompt, &p.UserID, &p.Status, &p.AppType, &created, &updated); err != nil {
			return nil, err
		}
		p.CreatedAt = fromUnix(created)
		p.UpdatedAt = fromUnix(updated)
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProjectStatus flips the lifecycle status and optionally sets the
// description (empty description leaves it unchanged).
func (s *Store) UpdateProjectStatus(ctx context.Context, userID, projectID, status, description string) error {
	const q = `
UPDATE projects
SET status = $3,
    description = CASE WHEN $4 = '' THEN description ELSE $4 END,
    updated_at = $5
WHERE id = $1 AND user_id = $2;
`
	res, err := s.db.ExecContext(ctx, q, projectID, userID, status, description, nowUnix())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchProject refreshes the project's updated_at, used after file edits.
func (s *Store) TouchProject(ctx context.Context, userID, projectID string) error {
	const q = `UPDATE projects SET updated_at = $3 WHERE id = $1 AND user_id = $2;`
	_, err := s.db.ExecContext(ctx, q, projectID, userID, nowUnix())
	return err
}

// DeleteProject removes the project together with all of its files and
// conversation records in a single transaction, so a failure mid-cascade
// cannot leave orphans behind.
func (s *Store) DeleteProject(ctx context.Context, userID, projectID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM project_files WHERE project_id = $1 AND user_id = $2;`, projectID, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM ai_conversations WHERE project_id = $1 AND user_id = $2;`, projectID, userID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2;`, projectID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
