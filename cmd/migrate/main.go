package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/core/config"
	"claimdesk.app/server/core/db"
)

const usage = "usage: migrate [up|down]"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = db.Migrate(ctx, cfg.DB.DSN)
	case "down":
		err = db.MigrateDown(ctx, cfg.DB.DSN)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.ErrorContext(ctx, "migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "migration complete", "direction", direction)
}
