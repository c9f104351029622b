package store

import "bitebook/nutrition"

// Note categories. The model picks one when calling writeNote; anything else
// is stored as-is (the column has no CHECK).
const (
	NoteInsight     = "insight"
	NoteObservation = "observation"
	NoteReminder    = "reminder"
)

type Note struct {
	ID        int64
	Content   string
	Type      string
	CreatedAt string
}

// CreateNote appends a note. Notes are append-only from the assistant's side.
func (s *Store) CreateNote(content, noteType string) (*Note, error) {
	if noteType == "" {
		noteType = NoteInsight
	}

	res, err := s.db.Exec(
		`INSERT INTO notes (content, type, created_at) VALUES (?, ?, ?)`,
		content, noteType, nutrition.FormatSQLite(s.now()),
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`SELECT id, content, type, created_at FROM notes WHERE id = ?`, id)
	var n Note
	if err := row.Scan(&n.ID, &n.Content, &n.Type, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Notes lists notes newest first, optionally filtered by type.
func (s *Store) Notes(noteType string) ([]Note, error) {
	query := `SELECT id, content, type, created_at FROM notes ORDER BY created_at DESC, id DESC`
	args := []any{}
	if noteType != "" {
		query = `SELECT id, content, type, created_at FROM notes WHERE type = ? ORDER BY created_at DESC, id DESC`
		args = append(args, noteType)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Content, &n.Type, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) DeleteNote(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
