package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

type options struct {
	dir     string
	name    string
	version string
}

// offline commands work on the migration files alone.
var offline = map[string]func(options) (string, error){
	"create": func(o options) (string, error) {
		if o.name == "" {
			return "", errors.New("missing -name")
		}
		target := o.dir
		if target == migrate.EmbeddedDir {
			target = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(target, o.name)
		if err != nil {
			return "", err
		}
		return "created migration: " + path, nil
	},
	"validate": func(o options) (string, error) {
		if err := migrate.ValidateDir(o.dir); err != nil {
			return "", err
		}
		return "migration validation passed", nil
	},
}

// goose commands need a Postgres connection.
var goose = map[string]func(context.Context, *sql.DB, options) error{
	"down": func(ctx context.Context, sqlDB *sql.DB, o options) error {
		return migrate.Run(ctx, sqlDB, o.dir, "down")
	},
	"status": func(ctx context.Context, sqlDB *sql.DB, o options) error {
		return migrate.Run(ctx, sqlDB, o.dir, "status")
	},
	"version": func(ctx context.Context, sqlDB *sql.DB, o options) error {
		if o.version == "" {
			return errors.New("missing -version")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, o.dir, o.version)
	},
}

func commandNames() string {
	names := []string{"up"}
	for name := range offline {
		names = append(names, name)
	}
	for name := range goose {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: "+commandNames())
	var opts options
	flag.StringVar(&opts.dir, "dir", migrate.EmbeddedDir, `migrations directory ("embedded" uses the compiled-in files)`)
	flag.StringVar(&opts.name, "name", "", "migration name, for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS), for -cmd=version")
	flag.Parse()

	if run, ok := offline[*cmd]; ok {
		msg, err := run(opts)
		if err != nil {
			fail("%s failed: %v", *cmd, err)
		}
		fmt.Println(msg)
		return
	}
	gooseRun, isGoose := goose[*cmd]
	if *cmd != "up" && !isGoose {
		fail("unknown -cmd %q, expected %s", *cmd, commandNames())
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Env:         cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"cmd": *cmd, "dir": opts.dir})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if *cmd == "up" {
		if err := migrate.Up(ctx, dbClient, opts.dir, logg); err != nil {
			fail("migrate up failed: %v", err)
		}
		logg.Info(ctx, "migrate.done")
		return
	}
	if dbClient.Dialect() == "sqlite" {
		fail("only -cmd=up is supported on sqlite")
	}

	sqlDB, err := dbClient.SQL()
	requireResource(ctx, logg, "sql database", err)
	if err := gooseRun(ctx, sqlDB, opts); err != nil {
		fail("goose %s failed: %v", *cmd, err)
	}
	logg.Info(ctx, "migrate.done")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
