package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/ooh-agent-backend/internal/seed"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "all", "seed command: inventory|partners|all|clear-inventory|clear-partners|clear-all")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Env:         cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"cmd": *cmd,
	})

	if cfg.App.IsProd() && !cfg.FeatureFlags.AdminRoutes {
		fmt.Fprintln(os.Stderr, "refusing to seed production without OOH_ADMIN_ROUTES=true")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	svc, err := seed.NewService(seed.ServiceParams{DB: dbClient.DB(), Logger: logg})
	requireResource(ctx, logg, "seed service", err)

	var result any
	switch *cmd {
	case "inventory":
		result, err = svc.SeedInventory(ctx)
	case "partners":
		result, err = svc.SeedPartners(ctx)
	case "all":
		result, err = svc.SeedAll(ctx)
	case "clear-inventory":
		result, err = svc.ClearInventory(ctx)
	case "clear-partners":
		result, err = svc.ClearPartners(ctx)
	case "clear-all":
		result, err = svc.ClearAll(ctx)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		logg.Error(ctx, "seed command failed", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print result: %v\n", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
