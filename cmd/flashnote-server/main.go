package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/assist"
	"github.com/at-ishikawa/flashnote/internal/bootstrap"
	"github.com/at-ishikawa/flashnote/internal/config"
	"github.com/at-ishikawa/flashnote/internal/database"
	"github.com/at-ishikawa/flashnote/internal/inference/openai"
	"github.com/at-ishikawa/flashnote/internal/logger"
	"github.com/at-ishikawa/flashnote/internal/notebook"
	redisconn "github.com/at-ishikawa/flashnote/internal/redis"
	"github.com/at-ishikawa/flashnote/internal/saving"
	"github.com/at-ishikawa/flashnote/internal/server"
	redisstore "github.com/at-ishikawa/flashnote/internal/store/redis"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		migrate    bool
	)
	cmd := &cobra.Command{
		Use:           "flashnote-server",
		Short:         "Serve the flashnote HTTP API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				configFile = os.Getenv("FLASHNOTE_CONFIG")
			}
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return fmt.Errorf("logger.New() > %w", err)
			}
			defer func() {
				_ = log.Sync()
			}()
			return run(cmd.Context(), cfg, migrate, log)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path. Defaults to $FLASHNOTE_CONFIG")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations before serving")
	return cmd
}

func loadConfig(configFile string) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, migrate bool, log logger.Logger) error {
	app := bootstrap.New(cfg.Server.ShutdownTimeout, log)

	if migrate {
		migrationDB, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("database.Open() > %w", err)
		}
		applied, err := database.Migrate(migrationDB, cfg.Database.Driver)
		if err != nil {
			return fmt.Errorf("database.Migrate() > %w", err)
		}
		log.Info("database migrations checked", logger.Bool("applied", applied))
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error {
		return db.Close()
	})

	openaiClient := newGenerator(cfg.OpenAI, log)
	app.AddShutdownHook("openai client", func(context.Context) error {
		return openaiClient.Close()
	})

	var (
		drafts      saving.DraftStore
		idempotency saving.IdempotencyStore
	)
	redisClient, err := redisconn.Connect(ctx, cfg.Redis, log)
	switch {
	case errors.Is(err, redisconn.ErrNotConfigured):
		log.Warn("redis is not configured; drafts and idempotency keys are disabled")
	case err != nil:
		return errors.Join(err, db.Close(), openaiClient.Close())
	default:
		drafts = redisstore.NewDraftStore(redisClient, cfg.Redis.DraftTTL)
		idempotency = redisstore.NewIdempotencyStore(redisClient, cfg.Redis.IdempotencyTTL)
		app.AddShutdownHook("redis", func(context.Context) error {
			return redisClient.Close()
		})
	}

	notebooks := notebook.NewDBNotebookRepository(db)
	saves := notebook.NewDBSaveRepository(db)
	flashcards := notebook.NewDBFlashcardRepository(db)
	orchestrator := saving.NewOrchestrator(notebooks, saves, flashcards, openaiClient, idempotency, log)
	history := saving.NewHistory(notebooks, saves, flashcards)
	runner := assist.NewRunner(assist.NewInferenceHandler(openaiClient), log)

	srv := server.New(cfg.Server, server.NewHandler(orchestrator, history, drafts, runner, log), log)
	app.AddShutdownHook("http server", srv.Stop)

	return app.Run(ctx, func(context.Context) error {
		return srv.Start()
	})
}

func newGenerator(cfg config.OpenAIConfig, log logger.Logger) *openai.Client {
	client := openai.NewClient(cfg, log)
	log.Info("openai client configured", logger.String("model", client.GetModel()))
	return client
}
