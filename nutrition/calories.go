// Package nutrition provides calorie math and the time bucketing used by
// food entry aggregates (daily totals, weekly totals, dashboard display).
package nutrition

import "math"

// RemainingCalories returns how many calories are left for the day.
// Never negative: once the target is exceeded there is nothing "remaining".
func RemainingCalories(consumed, target int) int {
	if remaining := target - consumed; remaining > 0 {
		return remaining
	}
	return 0
}

// CaloriePercentage returns consumed as a percentage of target, clamped to 100.
func CaloriePercentage(consumed, target int) int {
	if target <= 0 {
		return 0
	}
	pct := float64(consumed) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// IsOverTarget reports whether consumption exceeds the daily target.
func IsOverTarget(consumed, target int) bool {
	return consumed > target
}

// WeeklyAverage returns the average daily calories over the given number of
// days, rounded to the nearest whole calorie.
func WeeklyAverage(totalCalories, days int) int {
	if days <= 0 {
		return 0
	}
	return int(math.Round(float64(totalCalories) / float64(days)))
}
