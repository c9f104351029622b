package store

import (
	"database/sql"

	"bitebook/nutrition"
)

type Message struct {
	ID             int64
	ConversationID int64
	Role           string
	Content        string
	Timestamp      string
}

// AppendMessage inserts a message row. The transcript is append-only: the
// orchestrator only ever inserts, never edits.
func (s *Store) AppendMessage(conversationID int64, role, content string) (*Message, error) {
	res, err := s.db.Exec(
		`INSERT INTO messages (conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
		conversationID, role, content, nutrition.FormatSQLite(s.now()),
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		`SELECT id, conversation_id, role, content, timestamp FROM messages WHERE id = ?`, id,
	)
	var m Message
	if err := row.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
		return nil, err
	}
	return &m, nil
}

// Messages returns up to limit messages for a conversation, oldest first.
// A non-positive limit returns the full transcript.
func (s *Store) Messages(conversationID int64, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, conversation_id, role, content, timestamp FROM messages
		 WHERE conversation_id = ? ORDER BY timestamp ASC, id ASC LIMIT ?`,
		conversationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// RecentMessages returns the newest limit messages for a conversation,
// reordered oldest-first so they can be fed to the model as context.
func (s *Store) RecentMessages(conversationID int64, limit int) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT id, conversation_id, role, content, timestamp FROM (
			SELECT id, conversation_id, role, content, timestamp FROM messages
			WHERE conversation_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?
		) ORDER BY timestamp ASC, id ASC`,
		conversationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// DeleteMessages removes all messages for a conversation.
func (s *Store) DeleteMessages(conversationID int64) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conversationID)
	return err
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
