package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) updateModels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc", "q":
		a.screen = screenChat
		return a, nil

	case "up", "k":
		if a.modelCursor > 0 {
			a.modelCursor--
		}
		return a, nil

	case "down", "j":
		if a.modelCursor < len(a.models)-1 {
			a.modelCursor++
		}
		return a, nil

	case "enter":
		if len(a.models) == 0 {
			return a, nil
		}
		name := a.models[a.modelCursor].Name
		a.provider.SetModel(name)
		if err := a.store.SetActiveModel(name); err != nil {
			a.status = fmt.Sprintf("Could not save model: %v", err)
		} else {
			a.status = "Model: " + name
		}
		a.screen = screenChat
		return a, nil
	}

	return a, nil
}

func (a *App) viewModels() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Models"))
	b.WriteString("\n\n")

	if a.models == nil {
		b.WriteString(a.spinner.View())
		b.WriteString(" loading...\n")
	} else if len(a.models) == 0 {
		b.WriteString(DimStyle.Render("No models available."))
		b.WriteString("\n")
	}

	active := a.provider.GetModel()
	for i, m := range a.models {
		line := m.Name
		if size := formatSize(m.Size); size != "" {
			line += DimStyle.Render("  " + size)
		}
		if m.Name == active {
			line += DimStyle.Render("  (active)")
		}
		if i == a.modelCursor {
			line = SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatFooter("enter", "Activate", "esc", "Back"))
	return b.String()
}

func formatSize(size int64) string {
	if size <= 0 {
		return ""
	}
	gb := float64(size) / (1 << 30)
	if gb >= 1 {
		return fmt.Sprintf("%.1f GB", gb)
	}
	return fmt.Sprintf("%.0f MB", float64(size)/(1<<20))
}
