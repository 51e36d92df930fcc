// Package bootstrap runs a long-lived process and shuts its resources down in reverse order.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/at-ishikawa/flashnote/internal/logger"
)

const defaultShutdownTimeout = 15 * time.Second

// Hook releases one resource during shutdown.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// App runs a function until it returns or the process is signalled, then calls the shutdown hooks.
type App struct {
	mu              sync.Mutex
	hooks           []Hook
	shutdownTimeout time.Duration
	logger          logger.Logger
}

func New(shutdownTimeout time.Duration, log logger.Logger) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &App{
		shutdownTimeout: shutdownTimeout,
		logger:          log,
	}
}

// AddShutdownHook registers fn. Hooks run last registered first.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, Hook{Name: name, Fn: fn})
}

// Run calls run and waits for it to return or for SIGINT/SIGTERM.
// Hooks run in both cases; their errors are joined with the error of run.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := make([]Hook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].Fn(ctx); err != nil {
			a.logger.Error("shutdown hook failed", logger.String("hook", hooks[i].Name), logger.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
