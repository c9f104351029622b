package store

import (
	"database/sql"
	"strconv"
)

const (
	settingCalorieTarget = "calorie_target"
	settingActiveModel   = "active_model"

	defaultCalorieTarget = 2000
)

// Setting returns the value for key, or "" when unset.
func (s *Store) Setting(key string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// CalorieTarget returns the configured daily target, falling back to the
// default when the setting is missing or unparseable.
func (s *Store) CalorieTarget() (int, error) {
	value, err := s.Setting(settingCalorieTarget)
	if err != nil {
		return 0, err
	}
	target, convErr := strconv.Atoi(value)
	if convErr != nil || target <= 0 {
		return defaultCalorieTarget, nil
	}
	return target, nil
}

func (s *Store) SetCalorieTarget(target int) error {
	return s.SetSetting(settingCalorieTarget, strconv.Itoa(target))
}

// ActiveModel returns the configured model identifier, or "" when none has
// been chosen yet.
func (s *Store) ActiveModel() (string, error) {
	return s.Setting(settingActiveModel)
}

func (s *Store) SetActiveModel(model string) error {
	return s.SetSetting(settingActiveModel, model)
}
