package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"clinic-backend/internal/config"
	"clinic-backend/internal/infrastructure/database"
	"clinic-backend/migrations"
	"clinic-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply and inspect clinic database migrations",
	}
	rootCmd.PersistentFlags().String("dir", "", "Read migrations from this directory instead of the embedded set")
	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *database.Migrator) error {
				applied, err := m.Up(ctx)
				if err != nil {
					return err
				}
				log.Info().Int("applied", applied).Msg("[MIGRATE] Done")
				return nil
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *database.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, st := range statuses {
					state := "pending"
					if st.Applied {
						state = "applied " + st.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(out, "%03d  %-40s %s\n", st.Version, st.Name, state)
				}
				return nil
			})
		},
	}
}

func withMigrator(cmd *cobra.Command, fn func(context.Context, *database.Migrator) error) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	var files fs.FS = migrations.Files
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		files = os.DirFS(dir)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, database.NewMigrator(db.Pool, files, dbConfig.MigrationsTable))
}
