package store

import (
	"fmt"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrations(t *testing.T) {
	s := newTestStore(t)

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}

	// Running the migration set again must be a no-op.
	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	// v2 message table must accept tool_call rows.
	c, err := s.CreateConversation("")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if _, err := s.AppendMessage(c.ID, RoleToolCall, `{"id":"tc_1"}`); err != nil {
		t.Errorf("tool_call role rejected: %v", err)
	}
}

func TestConversationLifecycle(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CreateConversation("")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if c.Title != "" {
		t.Errorf("new conversation title = %q, want empty", c.Title)
	}

	if err := s.EnsureTitle(c.ID, "I had two eggs and toast for breakfast today"); err != nil {
		t.Fatalf("EnsureTitle: %v", err)
	}
	got, err := s.GetConversation(c.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if got.Title != "I had two eggs and toast for breakfast today" {
		t.Errorf("title = %q", got.Title)
	}

	// EnsureTitle must not overwrite an existing title.
	if err := s.EnsureTitle(c.ID, "something else entirely"); err != nil {
		t.Fatalf("EnsureTitle second call: %v", err)
	}
	got, _ = s.GetConversation(c.ID)
	if got.Title != "I had two eggs and toast for breakfast today" {
		t.Errorf("title overwritten to %q", got.Title)
	}

	if err := s.DeleteConversation(c.ID); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}
	gone, err := s.GetConversation(c.ID)
	if err != nil {
		t.Fatalf("GetConversation after delete: %v", err)
	}
	if gone != nil {
		t.Error("conversation still present after delete")
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short message", "log an apple", "log an apple"},
		{"collapses whitespace", "  log   an\napple  ", "log an apple"},
		{"empty", "", "New Conversation"},
		{
			"long message truncated",
			"Please log everything I ate today: two eggs, toast with butter, and a large coffee",
			"Please log everything I ate today: two eggs, to...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateTitle(tt.input); got != tt.want {
				t.Errorf("GenerateTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecentMessagesWindow(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CreateConversation("")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	base := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		if _, err := s.AppendMessage(c.ID, RoleUser, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("AppendMessage %d: %v", i, err)
		}
	}

	recent, err := s.RecentMessages(c.ID, 20)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(recent) != 20 {
		t.Fatalf("got %d messages, want 20", len(recent))
	}
	if recent[0].Content != "message 10" {
		t.Errorf("first message = %q, want %q", recent[0].Content, "message 10")
	}
	if recent[19].Content != "message 29" {
		t.Errorf("last message = %q, want %q", recent[19].Content, "message 29")
	}
}

func TestFoodAggregates(t *testing.T) {
	s := newTestStore(t)

	// Wednesday 2024-06-12. Last week is Mon 3rd .. Sun 9th.
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	log := func(ts time.Time, name string, calories int, quantity float64) {
		t.Helper()
		s.now = func() time.Time { return ts }
		if _, err := s.LogFood(name, calories, quantity, nil); err != nil {
			t.Fatalf("LogFood(%s): %v", name, err)
		}
	}

	log(now.Add(-2*time.Hour), "banana", 95, 1)          // today
	log(now.Add(-1*time.Hour), "eggs", 70, 2)            // today, 140 effective
	log(now.AddDate(0, 0, -2), "pizza", 800, 1)          // Monday this week
	log(now.AddDate(0, 0, -5), "burger", 600, 1)         // last week Friday
	log(now.AddDate(0, 0, -20), "old cake", 450, 1)      // outside both windows
	log(now.AddDate(0, 0, -9), "pasta", 500, 1.5)        // last week Monday, 750 effective

	s.now = func() time.Time { return now }

	today, err := s.TodayCalories()
	if err != nil {
		t.Fatalf("TodayCalories: %v", err)
	}
	if today != 235 {
		t.Errorf("TodayCalories = %d, want 235", today)
	}

	week, err := s.WeekCalories()
	if err != nil {
		t.Fatalf("WeekCalories: %v", err)
	}
	if week != 1035 {
		t.Errorf("WeekCalories = %d, want 1035", week)
	}

	lastWeek, err := s.LastWeekCalories()
	if err != nil {
		t.Fatalf("LastWeekCalories: %v", err)
	}
	if lastWeek != 1350 {
		t.Errorf("LastWeekCalories = %d, want 1350", lastWeek)
	}

	entries, err := s.TodayEntries()
	if err != nil {
		t.Fatalf("TodayEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("TodayEntries = %d entries, want 2", len(entries))
	}
	if entries[0].Name != "eggs" {
		t.Errorf("newest entry = %q, want eggs", entries[0].Name)
	}

	days, err := s.WeekDayCount()
	if err != nil {
		t.Fatalf("WeekDayCount: %v", err)
	}
	if days != 2 {
		t.Errorf("WeekDayCount = %d, want 2", days)
	}
}

func TestFoodEntryEdit(t *testing.T) {
	s := newTestStore(t)

	e, err := s.LogFood("apple", 95, 1, nil)
	if err != nil {
		t.Fatalf("LogFood: %v", err)
	}

	if err := s.UpdateFoodEntry(e.ID, "large apple", 120, 1); err != nil {
		t.Fatalf("UpdateFoodEntry: %v", err)
	}
	got, err := s.GetFoodEntry(e.ID)
	if err != nil {
		t.Fatalf("GetFoodEntry: %v", err)
	}
	if got.Name != "large apple" || got.Calories != 120 {
		t.Errorf("entry after edit = %q/%d", got.Name, got.Calories)
	}

	if err := s.DeleteFoodEntry(e.ID); err != nil {
		t.Fatalf("DeleteFoodEntry: %v", err)
	}
	gone, err := s.GetFoodEntry(e.ID)
	if err != nil {
		t.Fatalf("GetFoodEntry after delete: %v", err)
	}
	if gone != nil {
		t.Error("entry still present after delete")
	}
}

func TestNotes(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CreateNote("User prefers low-carb meals", "")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.Type != NoteInsight {
		t.Errorf("default note type = %q, want %q", n.Type, NoteInsight)
	}

	if _, err := s.CreateNote("Log dinner earlier", NoteReminder); err != nil {
		t.Fatalf("CreateNote reminder: %v", err)
	}

	reminders, err := s.Notes(NoteReminder)
	if err != nil {
		t.Fatalf("Notes(reminder): %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("got %d reminders, want 1", len(reminders))
	}

	all, err := s.Notes("")
	if err != nil {
		t.Fatalf("Notes(all): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d notes, want 2", len(all))
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	// Seeded defaults from migration v1.
	target, err := s.CalorieTarget()
	if err != nil {
		t.Fatalf("CalorieTarget: %v", err)
	}
	if target != 2000 {
		t.Errorf("default calorie target = %d, want 2000", target)
	}

	if err := s.SetCalorieTarget(1800); err != nil {
		t.Fatalf("SetCalorieTarget: %v", err)
	}
	target, _ = s.CalorieTarget()
	if target != 1800 {
		t.Errorf("calorie target = %d, want 1800", target)
	}

	model, err := s.ActiveModel()
	if err != nil {
		t.Fatalf("ActiveModel: %v", err)
	}
	if model != "" {
		t.Errorf("default active model = %q, want empty", model)
	}

	if err := s.SetActiveModel("llama3.2:3b"); err != nil {
		t.Fatalf("SetActiveModel: %v", err)
	}
	model, _ = s.ActiveModel()
	if model != "llama3.2:3b" {
		t.Errorf("active model = %q", model)
	}
}

func TestSearchCache(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.StoreSearch("Banana", "95 calories per medium banana"); err != nil {
		t.Fatalf("StoreSearch: %v", err)
	}

	// Case and surrounding whitespace must hit the same row.
	results, ok, err := s.CachedSearch("  banana ")
	if err != nil {
		t.Fatalf("CachedSearch: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit for normalized query")
	}
	if results != "95 calories per medium banana" {
		t.Errorf("cached results = %q", results)
	}

	// Within the TTL the row is still fresh.
	s.now = func() time.Time { return now.Add(6 * 24 * time.Hour) }
	if _, ok, _ := s.CachedSearch("banana"); !ok {
		t.Error("expected hit one day before expiry")
	}

	// Past the TTL the row is inert until purged.
	s.now = func() time.Time { return now.Add(8 * 24 * time.Hour) }
	if _, ok, _ := s.CachedSearch("banana"); ok {
		t.Error("expected miss after expiry")
	}

	if err := s.PurgeExpiredSearches(); err != nil {
		t.Fatalf("PurgeExpiredSearches: %v", err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM search_cache`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expired rows remaining = %d, want 0", count)
	}
}
