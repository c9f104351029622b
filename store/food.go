package store

import (
	"database/sql"
	"math"
	"time"

	"bitebook/nutrition"
)

type FoodEntry struct {
	ID             int64
	Name           string
	Calories       int
	Quantity       float64
	Timestamp      string
	ConversationID *int64 // conversation the entry was logged from, if any
}

// LogFood inserts a food entry. Effective calories are calories * quantity;
// the multiplier is stored so the user can edit either later.
func (s *Store) LogFood(name string, calories int, quantity float64, conversationID *int64) (*FoodEntry, error) {
	if quantity <= 0 {
		quantity = 1.0
	}

	var convVal any
	if conversationID != nil {
		convVal = *conversationID
	}

	res, err := s.db.Exec(
		`INSERT INTO food_entries (name, calories, quantity, timestamp, conversation_id) VALUES (?, ?, ?, ?, ?)`,
		name, calories, quantity, nutrition.FormatSQLite(s.now()), convVal,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetFoodEntry(id)
}

func (s *Store) GetFoodEntry(id int64) (*FoodEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, name, calories, quantity, timestamp, conversation_id FROM food_entries WHERE id = ?`, id,
	)

	var e FoodEntry
	var conv sql.NullInt64
	err := row.Scan(&e.ID, &e.Name, &e.Calories, &e.Quantity, &e.Timestamp, &conv)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if conv.Valid {
		e.ConversationID = &conv.Int64
	}
	return &e, nil
}

// TodayEntries returns today's food entries, newest first.
func (s *Store) TodayEntries() ([]FoodEntry, error) {
	now := s.now()
	rows, err := s.db.Query(
		`SELECT id, name, calories, quantity, timestamp, conversation_id FROM food_entries
		 WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp DESC, id DESC`,
		nutrition.FormatSQLite(nutrition.StartOfDay(now)),
		nutrition.FormatSQLite(nutrition.EndOfDay(now)),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FoodEntry
	for rows.Next() {
		var e FoodEntry
		var conv sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Name, &e.Calories, &e.Quantity, &e.Timestamp, &conv); err != nil {
			return nil, err
		}
		if conv.Valid {
			e.ConversationID = &conv.Int64
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TodayCalories returns today's effective calorie total.
func (s *Store) TodayCalories() (int, error) {
	now := s.now()
	return s.caloriesBetween(nutrition.StartOfDay(now), nutrition.EndOfDay(now))
}

// WeekCalories returns the total from Monday of the current week until now.
func (s *Store) WeekCalories() (int, error) {
	now := s.now()
	return s.caloriesBetween(nutrition.StartOfWeek(now), nutrition.EndOfDay(now))
}

// LastWeekCalories returns the total over the previous Monday-to-Sunday week.
func (s *Store) LastWeekCalories() (int, error) {
	start, end := nutrition.LastWeekRange(s.now())
	return s.caloriesBetween(start, end)
}

// WeekDayCount returns how many distinct days this week have entries. Used
// for the weekly average on the dashboard.
func (s *Store) WeekDayCount() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT date(timestamp)) FROM food_entries WHERE timestamp >= ?`,
		nutrition.FormatSQLite(nutrition.StartOfWeek(s.now())),
	).Scan(&count)
	return count, err
}

func (s *Store) caloriesBetween(start, end time.Time) (int, error) {
	var total sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT SUM(calories * quantity) FROM food_entries WHERE timestamp >= ? AND timestamp <= ?`,
		nutrition.FormatSQLite(start), nutrition.FormatSQLite(end),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(math.Round(total.Float64)), nil
}

// UpdateFoodEntry edits an entry in place. This is the direct user edit path;
// it bypasses the orchestrator entirely.
func (s *Store) UpdateFoodEntry(id int64, name string, calories int, quantity float64) error {
	_, err := s.db.Exec(
		`UPDATE food_entries SET name = ?, calories = ?, quantity = ? WHERE id = ?`,
		name, calories, quantity, id,
	)
	return err
}

func (s *Store) DeleteFoodEntry(id int64) error {
	_, err := s.db.Exec(`DELETE FROM food_entries WHERE id = ?`, id)
	return err
}
