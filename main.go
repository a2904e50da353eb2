package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/config"
	"github.com/mariusweiss/netquest/internal/state"
	"github.com/mariusweiss/netquest/internal/ui"
)

func main() {
	server := flag.String("server", "", "game server base URL (overrides config)")
	user := flag.String("user", "", "leaderboard username (overrides config)")
	logPath := flag.String("log", "", "log file path (defaults to the state dir)")
	writeConfig := flag.Bool("write-config", false, "write a commented default config file and exit")
	flag.Parse()

	if *writeConfig {
		path := config.Path()
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server.BaseURL = *server
	}
	if *user != "" {
		cfg.Player.Username = *user
	}

	// The TUI owns stdout, so logs go to a file.
	logFile, err := openLogFile(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, nil)))

	client := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	store := state.NewStore()

	model := ui.NewApp(client, store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir := os.Getenv("XDG_STATE_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(home, ".local", "state")
		}
		dir = filepath.Join(dir, "netquest")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "netquest.log")
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
