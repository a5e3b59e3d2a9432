package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/institute_ledger/internal/commands"
	"github.com/SscSPs/institute_ledger/internal/core/ports/services"
	coresvc "github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/platform/config"
	"github.com/SscSPs/institute_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/institute_ledger/pkg/database"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	open := func(ctx context.Context) (*services.ServiceContainer, func(), error) {
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
		if err != nil {
			return nil, nil, err
		}
		return coresvc.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)), func() { database.ClosePgxPool(pool) }, nil
	}

	if err := commands.NewRootCommand(open, cfg.SystemActorID).Execute(); err != nil {
		os.Exit(1)
	}
}
