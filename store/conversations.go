package store

import (
	"database/sql"
	"strings"

	"bitebook/nutrition"
)

type Conversation struct {
	ID        int64
	Title     string // empty when the conversation has not been titled yet
	CreatedAt string
	UpdatedAt string
}

// CreateConversation inserts a new conversation. title may be empty; it is
// filled in later from the first user message (see EnsureTitle).
func (s *Store) CreateConversation(title string) (*Conversation, error) {
	now := nutrition.FormatSQLite(s.now())

	var titleVal any
	if title != "" {
		titleVal = title
	}

	res, err := s.db.Exec(
		`INSERT INTO conversations (title, created_at, updated_at) VALUES (?, ?, ?)`,
		titleVal, now, now,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.GetConversation(id)
}

// GetConversation returns the conversation or nil when it does not exist.
func (s *Store) GetConversation(id int64) (*Conversation, error) {
	row := s.db.QueryRow(
		`SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?`, id,
	)

	var c Conversation
	var title sql.NullString
	err := row.Scan(&c.ID, &title, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Title = title.String
	return &c, nil
}

// ListConversations returns all conversations, most recently updated first.
func (s *Store) ListConversations() ([]Conversation, error) {
	rows, err := s.db.Query(
		`SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		var title sql.NullString
		if err := rows.Scan(&c.ID, &title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Title = title.String
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}

// RenameConversation sets the title and bumps updated_at.
func (s *Store) RenameConversation(id int64, title string) error {
	_, err := s.db.Exec(
		`UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?`,
		title, nutrition.FormatSQLite(s.now()), id,
	)
	return err
}

// TouchConversation bumps updated_at so the conversation sorts to the top of
// the list after new activity.
func (s *Store) TouchConversation(id int64) error {
	_, err := s.db.Exec(
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		nutrition.FormatSQLite(s.now()), id,
	)
	return err
}

// DeleteConversation removes the conversation; messages cascade via FK.
func (s *Store) DeleteConversation(id int64) error {
	_, err := s.db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	return err
}

// EnsureTitle derives a title from the first user message when the
// conversation is still untitled. No-op otherwise.
func (s *Store) EnsureTitle(id int64, firstUserMessage string) error {
	c, err := s.GetConversation(id)
	if err != nil || c == nil || c.Title != "" {
		return err
	}
	return s.RenameConversation(id, GenerateTitle(firstUserMessage))
}

// GenerateTitle produces a conversation title from a first message:
// whitespace collapsed, truncated to 50 runes with an ellipsis.
func GenerateTitle(firstMessage string) string {
	cleaned := strings.Join(strings.Fields(firstMessage), " ")
	if cleaned == "" {
		return "New Conversation"
	}

	runes := []rune(cleaned)
	if len(runes) <= 50 {
		return cleaned
	}
	return string(runes[:47]) + "..."
}
