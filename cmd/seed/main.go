// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/weclaim/weclaim-api/internal/config"
	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/systemuser"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	name := flag.String("name", "Super Admin", "display name of the account")
	email := flag.String("email", os.Getenv("SEED_EMAIL"), "login email")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "login password")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *name, *email, *password); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, name, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required (-email/-password or SEED_EMAIL/SEED_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := core.Migrate(cfg.Database.URL); err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	svc := systemuser.NewService(systemuser.NewRepository(db.DB))

	user, created, err := svc.EnsureSuperAdmin(ctx, name, email, password)
	if err != nil {
		return err
	}

	action := "reset"
	if created {
		action = "created"
	}

	slog.Info("super admin "+action,
		"id", user.ID,
		"email", *user.Email,
	)
	return nil
}
