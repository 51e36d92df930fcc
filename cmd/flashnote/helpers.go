package main

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashnote/internal/config"
	"github.com/at-ishikawa/flashnote/internal/database"
	"github.com/at-ishikawa/flashnote/internal/inference"
	"github.com/at-ishikawa/flashnote/internal/inference/openai"
	"github.com/at-ishikawa/flashnote/internal/logger"
	"github.com/at-ishikawa/flashnote/internal/notebook"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	level := cfg.Log.Level
	if debugMode {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Pretty)
	if err != nil {
		return nil, fmt.Errorf("logger.New() > %w", err)
	}
	return log, nil
}

// app holds what every data command opens.
type app struct {
	cfg        *config.Config
	logger     logger.Logger
	db         *sqlx.DB
	notebooks  *notebook.DBNotebookRepository
	saves      *notebook.DBSaveRepository
	flashcards *notebook.DBFlashcardRepository
	aiClient   *openai.Client
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	return &app{
		cfg:        cfg,
		logger:     log,
		db:         db,
		notebooks:  notebook.NewDBNotebookRepository(db),
		saves:      notebook.NewDBSaveRepository(db),
		flashcards: notebook.NewDBFlashcardRepository(db),
	}, nil
}

func (a *app) Close() {
	if a.aiClient != nil {
		_ = a.aiClient.Close()
	}
	_ = a.db.Close()
	_ = a.logger.Sync()
}

func (a *app) history() *saving.History {
	return saving.NewHistory(a.notebooks, a.saves, a.flashcards)
}

// orchestrator builds the save orchestrator. withAI requires an OpenAI API key.
func (a *app) orchestrator(withAI bool) (*saving.Orchestrator, error) {
	var generator inference.Client
	if withAI {
		if a.cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		a.aiClient = openai.NewClient(a.cfg.OpenAI, a.logger)
		generator = a.aiClient
	}
	return saving.NewOrchestrator(a.notebooks, a.saves, a.flashcards, generator, nil, a.logger), nil
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
