package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bitebook/nutrition"
	"bitebook/store"
)

type dashboardData struct {
	target        int
	today         int
	week          int
	lastWeek      int
	weeklyAverage int
	entries       []store.FoodEntry
}

func (a *App) openDashboard() (tea.Model, tea.Cmd) {
	var d dashboardData
	var err error

	if d.target, err = a.store.CalorieTarget(); err == nil {
		if d.today, err = a.store.TodayCalories(); err == nil {
			if d.week, err = a.store.WeekCalories(); err == nil {
				if d.lastWeek, err = a.store.LastWeekCalories(); err == nil {
					d.entries, err = a.store.TodayEntries()
				}
			}
		}
	}
	if err != nil {
		a.status = fmt.Sprintf("Could not load dashboard: %v", err)
		return a, nil
	}

	days, err := a.store.WeekDayCount()
	if err != nil {
		a.status = fmt.Sprintf("Could not load dashboard: %v", err)
		return a, nil
	}
	d.weeklyAverage = nutrition.WeeklyAverage(d.week, days)

	a.dashboard = d
	a.screen = screenDashboard
	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "q", "ctrl+d":
		a.screen = screenChat
		return a, nil
	}
	return a, nil
}

func (a *App) viewDashboard() string {
	d := a.dashboard

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Today"))
	b.WriteString("\n\n")

	remaining := nutrition.RemainingCalories(d.today, d.target)
	pct := nutrition.CaloriePercentage(d.today, d.target)

	totalLine := fmt.Sprintf("%d / %d kcal", d.today, d.target)
	if nutrition.IsOverTarget(d.today, d.target) {
		b.WriteString(OverTargetStyle.Render(totalLine + "  over target"))
	} else {
		b.WriteString(UnderTargetStyle.Render(totalLine))
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %d remaining", remaining)))
	}
	b.WriteString("\n")
	b.WriteString(a.progressBar(pct))
	b.WriteString("\n\n")

	if len(d.entries) == 0 {
		b.WriteString(DimStyle.Render("Nothing logged today yet."))
		b.WriteString("\n")
	}
	for _, entry := range d.entries {
		line := fmt.Sprintf("  %-30s %6d kcal", entryLabel(entry), entryCalories(entry))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("This Week"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Total      %6d kcal\n", d.week))
	b.WriteString(fmt.Sprintf("  Daily avg  %6d kcal\n", d.weeklyAverage))
	b.WriteString(fmt.Sprintf("  Last week  %6d kcal\n", d.lastWeek))

	b.WriteString("\n")
	b.WriteString(FormatFooter("esc", "Back"))
	return b.String()
}

func (a *App) progressBar(pct int) string {
	width := a.width - 10
	if width < 10 {
		width = 10
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := UnderTargetStyle
	if pct >= 100 {
		style = OverTargetStyle
	}
	return style.Render(bar) + DimStyle.Render(fmt.Sprintf(" %d%%", pct))
}

func entryLabel(entry store.FoodEntry) string {
	if entry.Quantity != 1.0 {
		return fmt.Sprintf("%s x%.1f", entry.Name, entry.Quantity)
	}
	return entry.Name
}

func entryCalories(entry store.FoodEntry) int {
	return int(float64(entry.Calories) * entry.Quantity)
}
