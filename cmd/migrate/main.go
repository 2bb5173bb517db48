// Command migrate applies the schema under migrations/ to the configured
// database with the atlas CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory holding the schema files")
		devURL  = flag.String("dev-url", "docker://postgres/17/dev", "atlas dev database used for diffing")
		binary  = flag.String("atlas", "atlas", "path to the atlas binary")
		dryRun  = flag.Bool("dry-run", false, "print the plan without applying it")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	// Only the database and log settings are needed here, so PORT and friends stay optional.
	var (
		dbCfg  config.DBConfig
		logCfg config.LogConfig
	)
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}
	if err := envconfig.Process("", &logCfg); err != nil {
		slog.Error("failed to load log config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(logCfg).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	applied, err := apply(ctx, dbCfg, *binary, *dir, *devURL, *dryRun)
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migration finished", "changes", applied, "dry_run", *dryRun)
}

func apply(ctx context.Context, cfg config.DBConfig, binary, dir, devURL string, dryRun bool) (int, error) {
	client, err := atlasexec.NewClient(".", binary)
	if err != nil {
		return 0, errors.Wrap(err, "init atlas client")
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         databaseURL(cfg),
		To:          "file://" + dir,
		DevURL:      devURL,
		DryRun:      dryRun,
		AutoApprove: true,
	})
	if err != nil {
		return 0, errors.Wrap(err, "atlas schema apply")
	}
	if dryRun {
		return len(res.Changes.Pending), nil
	}
	return len(res.Changes.Applied), nil
}

func databaseURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
