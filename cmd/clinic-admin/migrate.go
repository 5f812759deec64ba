package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/migrations"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	steps := []struct {
		use, short string
		run        func(context.Context, *sql.DB) error
	}{
		{"up", "Apply pending migrations", migrations.Up},
		{"down", "Roll back the most recent migration", migrations.Down},
		{"status", "Show migration status", migrations.Status},
	}
	for _, s := range steps {
		cmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd.Context(), *configPath, s.run)
			},
		})
	}
	return cmd
}

func withDB(ctx context.Context, configPath string, fn func(context.Context, *sql.DB) error) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := fn(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info().Str("db", cfg.Postgres.DBName).Msg("migration step completed")
	return nil
}
