package store

import (
	"context"

	"promptpilot_server/internal/types"
)

// AddConversation appends one chat turn to the project's conversation
// log. Records are append-only; nothing updates or evicts them.
func (s *Store) AddConversation(ctx context.Context, c *types.Conversation) error {
	c.ID = newID("conv")
	now := nowUnix()
	c.CreatedAt = fromUnix(now)

	const q = `
INSERT INTO ai_conversations (id, project_id, user_id, message, response, message_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := s.db.ExecContext(ctx, q, c.ID, c.ProjectID, c.UserID, c.Message, c.Response, c.MessageType, now)
	return err
}

// ListConversations returns the project's chat log in chronological order.
func (s *Store) ListConversations(ctx context.Context, userID, projectID string) ([]types.Conversation, error) {
	const q = `
SELECT id, project_id, user_id, message, response, message_type, created_at
FROM ai_conversations
WHERE project_id = $1 AND user_id = $2
ORDER BY created_at ASC;
`
	rows, err := s.db.QueryContext(ctx, q, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]types.Conversation, 0, 16)
	for rows.Next() {
		var c types.Conversation
		var created int64
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Message, &c.Response, &c.MessageType, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = fromUnix(created)
		out = append(out, c)
	}
	return out, rows.Err()
}
