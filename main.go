package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bitebook/chat"
	"bitebook/config"
	"bitebook/provider"
	"bitebook/search"
	"bitebook/store"
	"bitebook/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	st, err := store.Open(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.PurgeExpiredSearches(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: failed to purge expired searches: %v", err)
	}

	// The model picked in-app wins over the configured default.
	activeModel, err := st.ActiveModel()
	if err != nil {
		fmt.Printf("Failed to read settings: %v\n", err)
		os.Exit(1)
	}

	p, err := provider.NewProvider(provider.FromAppConfig(cfg, activeModel))
	if err != nil {
		fmt.Printf("Failed to initialize %s provider: %v\n", cfg.Provider, err)
		os.Exit(1)
	}

	var searcher chat.Searcher
	if cfg.SearchEnabled {
		searcher = search.NewClient(st)
	}
	executor := chat.NewExecutor(st, searcher)
	manager := chat.NewManager(p, st, executor, cfg)

	conversation, err := openConversation(st)
	if err != nil {
		fmt.Printf("Failed to open conversation: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(
		ui.NewApp(cfg, st, manager, p, conversation.ID),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running bitebook: %v\n", err)
		os.Exit(1)
	}
}

// openConversation resumes the most recent conversation, or starts the
// first one.
func openConversation(st *store.Store) (*store.Conversation, error) {
	conversations, err := st.ListConversations()
	if err != nil {
		return nil, err
	}
	if len(conversations) > 0 {
		return &conversations[0], nil
	}
	return st.CreateConversation("")
}
