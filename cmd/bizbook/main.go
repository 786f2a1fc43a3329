package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/bizbook/internal/cli"
	"github.com/alexanderramin/bizbook/internal/config"
	"github.com/alexanderramin/bizbook/internal/db"
	"github.com/alexanderramin/bizbook/internal/repository"
	"github.com/alexanderramin/bizbook/internal/service"
	"github.com/alexanderramin/bizbook/internal/snapshot"
	"github.com/alexanderramin/bizbook/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	kv, closeKV, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	st, err := store.New(ctx, kv, store.WithLogger(logger))
	if err != nil {
		return err
	}
	snaps, err := snapshot.NewManager(ctx, st, kv, snapshot.WithLogger(logger))
	if err != nil {
		return err
	}

	var warnings []string
	for _, w := range []error{st.LoadWarning(), snaps.LoadWarning()} {
		if w != nil {
			warnings = append(warnings, w.Error())
		}
	}

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Transactions:    service.NewTransactionService(st, observers...),
		Clients:         service.NewClientService(st, observers...),
		Opportunities:   service.NewOpportunityService(st, observers...),
		Backups:         service.NewBackupService(st, observers...),
		Snapshots:       snaps,
		State:           st,
		Currency:        cfg.Currency,
		StartupWarnings: warnings,
	}

	// Prompts and the board need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// openKV opens the configured backend. The returned func releases it.
func openKV(cfg config.Config) (repository.KVStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage {
	case config.StorageFile:
		kv, err := repository.NewFileKVStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening data directory: %w", err)
		}
		return kv, noop, nil
	case config.StorageMemory:
		return repository.NewMemoryKVStore(), noop, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteKVStore(database), database.Close, nil
	}
}
