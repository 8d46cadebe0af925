package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/cache"
	"github.com/kindling-cc/kindling/internal/community"
	"github.com/kindling-cc/kindling/internal/config"
	"github.com/kindling-cc/kindling/internal/prefs"
	"github.com/kindling-cc/kindling/internal/session"
	"github.com/kindling-cc/kindling/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	logger, logFile, err := openLogger(cfg.Log)
	if err != nil {
		stdlog.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		stdlog.Fatalf("mkdir cache dir: %v", err)
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		stdlog.Fatalf("open cache: %v", err)
	}
	defer store.Close()

	communities, err := community.Load(cfg.UI.CommunitiesFile)
	if err != nil {
		stdlog.Fatalf("communities: %v", err)
	}

	client := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)

	pr, err := prefs.Load()
	if err != nil {
		logger.Warn("loading preferences", "err", err)
	}

	var sess *session.Session
	if s, err := session.Load(); err == nil {
		sess = &s
	}

	p := tea.NewProgram(
		tui.New(ctx, cfg, logger, client, store, communities, pr, sess),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// openLogger sets up the file logger. The TUI owns the terminal, so nothing
// is ever logged to stdout or stderr.
func openLogger(cfg config.Log) (*log.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, f, nil
}
