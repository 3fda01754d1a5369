package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifeuk-prep/trainer/internal/domain/catalog"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/infrastructure/config"
	"github.com/lifeuk-prep/trainer/internal/progress"
	"github.com/lifeuk-prep/trainer/internal/service"
	"github.com/lifeuk-prep/trainer/internal/ui"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "keep progress in memory only, nothing touches disk")
	seed := flag.Int64("seed", 0, "seed for question selection (0 = random)")
	flag.Parse()

	cfg := config.Load()
	logger := newLogger(cfg.LogPath)

	// ── Dependencies ────────────────────────────────────────────────
	var store progress.Store
	if *ephemeral {
		store = progress.NewMemory()
	} else {
		db, err := progress.NewSQLite(cfg.DBPath)
		if err != nil {
			logger.Error("failed to open progress database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = db
	}

	cat, err := catalog.Load(cfg.QuestionsPath)
	if err != nil {
		logger.Error("failed to load question catalog", "path", cfg.QuestionsPath, "error", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	selector := selection.New(*seed)

	svc := service.NewExamService(cat, store, selector, service.Config{
		SessionSize:  cfg.SessionSize,
		PassMark:     cfg.PassMark,
		ExamDuration: cfg.ExamDuration,
	}, logger)

	// ── UI ──────────────────────────────────────────────────────────
	model := ui.NewModel(svc, ui.Options{NoColor: cfg.NoColor})
	program := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("trainer starting", "questions", cat.Len(), "seed", *seed)
	if _, err := program.Run(); err != nil {
		logger.Error("ui failed", "error", err)
		os.Exit(1)
	}
}

// newLogger writes JSON logs to the configured file. The terminal itself is
// owned by the TUI, so stdout is not an option.
func newLogger(path string) *slog.Logger {
	var out io.Writer = io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		}
	}
	return slog.New(slog.NewJSONHandler(out, nil))
}
