package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bitebook/store"
)

type fakeSearcher struct {
	results string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.results, nil
}

func newTestExecutor(t *testing.T) (*Executor, *store.Store, *fakeSearcher) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	searcher := &fakeSearcher{results: "Banana: 95 calories per medium fruit"}
	return NewExecutor(st, searcher), st, searcher
}

func TestExecuteLogFood(t *testing.T) {
	e, st, _ := newTestExecutor(t)

	result := e.Execute(context.Background(), "logFood", map[string]any{
		"name":     "banana",
		"calories": float64(95),
		"quantity": float64(2),
	})

	if !result.Success {
		t.Fatalf("logFood failed: %s", result.Error)
	}

	data := result.Data.(map[string]any)
	if data["todayTotal"] != 190 {
		t.Errorf("todayTotal = %v, want 190", data["todayTotal"])
	}

	entries, err := st.TodayEntries()
	if err != nil {
		t.Fatalf("TodayEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "banana" || entries[0].Quantity != 2 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestExecuteLogFoodValidation(t *testing.T) {
	e, _, _ := newTestExecutor(t)

	tests := []struct {
		name   string
		params map[string]any
	}{
		{"missing name", map[string]any{"calories": float64(95)}},
		{"missing calories", map[string]any{"name": "banana"}},
		{"calories not a number", map[string]any{"name": "banana", "calories": "ninety"}},
		{"nil params", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Execute(context.Background(), "logFood", tt.params)
			if result.Success {
				t.Error("expected failure")
			}
			if !strings.Contains(result.Error, "name and calories") {
				t.Errorf("error = %q", result.Error)
			}
		})
	}
}

func TestExecuteLogFoodDefaultQuantity(t *testing.T) {
	e, st, _ := newTestExecutor(t)

	result := e.Execute(context.Background(), "logFood", map[string]any{
		"name":     "toast",
		"calories": float64(80),
	})
	if !result.Success {
		t.Fatalf("logFood failed: %s", result.Error)
	}

	entries, _ := st.TodayEntries()
	if len(entries) != 1 || entries[0].Quantity != 1.0 {
		t.Errorf("quantity = %v, want 1.0", entries[0].Quantity)
	}
}

func TestExecuteSearchWeb(t *testing.T) {
	e, _, searcher := newTestExecutor(t)

	result := e.Execute(context.Background(), "searchWeb", map[string]any{
		"query": "calories in a banana",
	})
	if !result.Success {
		t.Fatalf("searchWeb failed: %s", result.Error)
	}
	if result.Data != "Banana: 95 calories per medium fruit" {
		t.Errorf("data = %v", result.Data)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "calories in a banana" {
		t.Errorf("queries = %v", searcher.queries)
	}

	missing := e.Execute(context.Background(), "searchWeb", map[string]any{})
	if missing.Success || !strings.Contains(missing.Error, "query") {
		t.Errorf("expected missing-query error, got %+v", missing)
	}
}

func TestExecuteSearchWebError(t *testing.T) {
	e, _, searcher := newTestExecutor(t)
	searcher.err = errors.New("context canceled")

	result := e.Execute(context.Background(), "searchWeb", map[string]any{"query": "x"})
	if result.Success {
		t.Error("expected failure")
	}
}

func TestExecuteWriteNote(t *testing.T) {
	e, st, _ := newTestExecutor(t)

	result := e.Execute(context.Background(), "writeNote", map[string]any{
		"content": "User skips breakfast most days",
		"type":    "observation",
	})
	if !result.Success {
		t.Fatalf("writeNote failed: %s", result.Error)
	}

	notes, _ := st.Notes(store.NoteObservation)
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}

	missing := e.Execute(context.Background(), "writeNote", map[string]any{"type": "insight"})
	if missing.Success || !strings.Contains(missing.Error, "content") {
		t.Errorf("expected missing-content error, got %+v", missing)
	}
}

func TestExecuteGetCalories(t *testing.T) {
	e, _, _ := newTestExecutor(t)

	e.Execute(context.Background(), "logFood", map[string]any{"name": "eggs", "calories": float64(140)})

	tests := []struct {
		name        string
		period      any
		wantPeriod  string
		wantEntries int
	}{
		{"today", "today", "today", 1},
		{"this week", "this_week", "this_week", 0},
		{"last week", "last_week", "last_week", 0},
		{"unknown period falls back to today", "yesterday", "today", 1},
		{"missing period falls back to today", nil, "today", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]any{}
			if tt.period != nil {
				params["period"] = tt.period
			}

			result := e.Execute(context.Background(), "getCalories", params)
			if !result.Success {
				t.Fatalf("getCalories failed: %s", result.Error)
			}

			data := result.Data.(map[string]any)
			if data["period"] != tt.wantPeriod {
				t.Errorf("period = %v, want %s", data["period"], tt.wantPeriod)
			}
			if data["totalCalories"] != 140 {
				t.Errorf("totalCalories = %v, want 140", data["totalCalories"])
			}
			entries := data["entries"].([]map[string]any)
			if len(entries) != tt.wantEntries {
				t.Errorf("entries = %d, want %d", len(entries), tt.wantEntries)
			}
		})
	}
}

func TestExecuteGetTargetCalories(t *testing.T) {
	e, st, _ := newTestExecutor(t)

	if err := st.SetCalorieTarget(1800); err != nil {
		t.Fatalf("SetCalorieTarget: %v", err)
	}

	result := e.Execute(context.Background(), "getTargetCalories", nil)
	if !result.Success {
		t.Fatalf("getTargetCalories failed: %s", result.Error)
	}
	data := result.Data.(map[string]any)
	if data["targetCalories"] != 1800 {
		t.Errorf("targetCalories = %v, want 1800", data["targetCalories"])
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	e, _, _ := newTestExecutor(t)

	result := e.Execute(context.Background(), "orderPizza", map[string]any{})
	if result.Success {
		t.Error("expected failure")
	}
	if !strings.Contains(result.Error, "Unknown tool: orderPizza") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestExecuteAttributesConversation(t *testing.T) {
	e, st, _ := newTestExecutor(t)

	conv, err := st.CreateConversation("")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	e.SetConversation(conv.ID)

	result := e.Execute(context.Background(), "logFood", map[string]any{"name": "apple", "calories": float64(95)})
	if !result.Success {
		t.Fatalf("logFood failed: %s", result.Error)
	}

	entries, _ := st.TodayEntries()
	if len(entries) != 1 || entries[0].ConversationID == nil || *entries[0].ConversationID != conv.ID {
		t.Errorf("entry not attributed to conversation: %+v", entries)
	}
}
