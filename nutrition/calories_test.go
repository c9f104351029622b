package nutrition

import (
	"testing"
	"time"
)

func TestRemainingCalories(t *testing.T) {
	tests := []struct {
		name     string
		consumed int
		target   int
		want     int
	}{
		{"under target", 1500, 2000, 500},
		{"at target", 2000, 2000, 0},
		{"over target clamps to zero", 2500, 2000, 0},
		{"nothing consumed", 0, 2000, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingCalories(tt.consumed, tt.target); got != tt.want {
				t.Errorf("RemainingCalories(%d, %d) = %d, want %d", tt.consumed, tt.target, got, tt.want)
			}
		})
	}
}

func TestCaloriePercentage(t *testing.T) {
	tests := []struct {
		name     string
		consumed int
		target   int
		want     int
	}{
		{"half", 1000, 2000, 50},
		{"over target clamps to 100", 2500, 2000, 100},
		{"zero target", 500, 0, 0},
		{"negative target", 500, -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaloriePercentage(tt.consumed, tt.target); got != tt.want {
				t.Errorf("CaloriePercentage(%d, %d) = %d, want %d", tt.consumed, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsOverTarget(t *testing.T) {
	if !IsOverTarget(2500, 2000) {
		t.Error("IsOverTarget(2500, 2000) = false, want true")
	}
	if IsOverTarget(2000, 2000) {
		t.Error("IsOverTarget(2000, 2000) = true, want false")
	}
}

func TestWeeklyAverage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		days  int
		want  int
	}{
		{"whole number", 14000, 7, 2000},
		{"rounds", 10000, 3, 3333},
		{"zero days", 5000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyAverage(tt.total, tt.days); got != tt.want {
				t.Errorf("WeeklyAverage(%d, %d) = %d, want %d", tt.total, tt.days, got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	wed := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(wed); !got.Equal(want) {
		t.Errorf("StartOfWeek(wednesday) = %v, want %v", got, want)
	}

	// Sunday belongs to the week starting the previous Monday.
	sun := time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sun); !got.Equal(want) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, want)
	}

	mon := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(mon); !got.Equal(want) {
		t.Errorf("StartOfWeek(monday) = %v, want %v", got, want)
	}
}

func TestLastWeekRange(t *testing.T) {
	wed := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	start, end := LastWeekRange(wed)

	wantStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("LastWeekRange start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("LastWeekRange end = %v, want %v", end, wantEnd)
	}
}

func TestFormatSQLite(t *testing.T) {
	ts := time.Date(2024, 6, 12, 9, 5, 3, 0, time.UTC)
	if got := FormatSQLite(ts); got != "2024-06-12 09:05:03" {
		t.Errorf("FormatSQLite = %q", got)
	}
}
