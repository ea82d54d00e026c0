package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"promptpilot_server/internal/types"
)

// CreateFile inserts one file row linked to its project and owner and
// assigns its identifier and timestamps.
func (s *Store) CreateFile(ctx context.Context, f *types.ProjectFile) error {
	if strings.TrimSpace(f.FilePath) == "" {
		return fmt.Errorf("file path required")
	}
	if strings.TrimSpace(f.ProjectID) == "" {
		return fmt.Errorf("project id required")
	}
	if strings.TrimSpace(f.UserID) == "" {
		return fmt.Errorf("user id required")
	}

	f.ID = newID("file")
	now := nowUnix()
	f.CreatedAt = fromUnix(now)
	f.UpdatedAt = fromUnix(now)

	const q = `
INSERT INTO project_files (id, project_id, file_path, content, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := s.db.ExecContext(ctx, q, f.ID, f.ProjectID, f.FilePath, f.Content, f.UserID, now, now)
	return err
}

// ListFiles returns all files of a project owned by userID, ordered by
// path ascending.
func (s *Store) ListFiles(ctx context.Context, userID, projectID string) ([]types.ProjectFile, error) {
	const q = `
SELECT id, project_id, file_path, content, user_id, created_at, updated_at
FROM project_files
WHERE project_id = $1 AND user_id = $2
ORDER BY file_path ASC;
`
	rows, err := s.db.QueryContext(ctx, q, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]types.ProjectFile, 0, 16)
	for rows.Next() {
		var f types.ProjectFile
		var created, updated int64
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.FilePath, &f.Content, &f.UserID, &created, &updated); err != nil {
			return nil, err
		}
		f.CreatedAt = fromUnix(created)
		f.UpdatedAt = fromUnix(updated)
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFile returns one file by identifier.
func (s *Store) GetFile(ctx context.Context, userID, fileID string) (*types.ProjectFile, error) {
	const q = `
SELECT id, project_id, file_path, content, user_id, created_at, updated_at
FROM project_files
WHERE id = $1 AND user_id = $2;
`
	return s.scanFile(s.db.QueryRowContext(ctx, q, fileID, userID))
}

// GetFileByPath returns one file by its logical path within a project.
func (s *Store) GetFileByPath(ctx context.Context, userID, projectID, filePath string) (*types.ProjectFile, error) {
	const q = `
SELECT id, project_id, file_path, content, user_id, created_at, updated_at
FROM project_files
WHERE project_id = $1 AND file_path = $2 AND user_id = $3;
`
	return s.scanFile(s.db.QueryRowContext(ctx, q, projectID, filePath, userID))
}

func (s *Store) scanFile(row *sql.Row) (*types.ProjectFile, error) {
	var f types.ProjectFile
	var created, updated int64
	err := row.Scan(&f.ID, &f.ProjectID, &f.FilePath, &f.Content, &f.UserID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.CreatedAt = fromUnix(created)
	f.UpdatedAt = fromUnix(updated)
	return &f, nil
}

// UpdateFileContent replaces a file's content in full (no diffing) and
// refreshes its update timestamp. Last write wins.
func (s *Store) UpdateFileContent(ctx context.Context, userID, fileID, content string) error {
	const q = `
UPDATE project_files
SET content = $3, updated_at = $4
WHERE id = $1 AND user_id = $2;
`
	res, err := s.db.ExecContext(ctx, q, fileID, userID, content, nowUnix())
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

// DeleteFile removes one file row.
func (s *Store) DeleteFile(ctx context.Context, userID, fileID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM project_files WHERE id = $1 AND user_id = $2;`, fileID, userID)
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
