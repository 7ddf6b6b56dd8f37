package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vibecheck/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or revert database schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("path", "db/migrations", "Directory holding the migration files")

	rootCmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations", func(m *migrate.Migrate, _ []string) error {
			return ignoreNoChange(m.Up())
		}),
		migrationCmd("down", "Revert all migrations", func(m *migrate.Migrate, _ []string) error {
			return ignoreNoChange(m.Down())
		}),
		stepsCmd(),
		forceCmd(),
		migrationCmd("version", "Print the current schema version", func(m *migrate.Migrate, _ []string) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("version: none")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Printf("version: %d, dirty: %v\n", version, dirty)
			return nil
		}),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func stepsCmd() *cobra.Command {
	cmd := migrationCmd("steps N", "Apply N migrations, or revert them when N is negative", func(m *migrate.Migrate, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid steps argument: %w", err)
		}
		if err := ignoreNoChange(m.Steps(n)); err != nil {
			return err
		}
		log.Printf("applied %d migration steps", n)
		return nil
	})
	cmd.Args = cobra.ExactArgs(1)
	return cmd
}

func forceCmd() *cobra.Command {
	cmd := migrationCmd("force VERSION", "Mark VERSION as applied and clear the dirty flag", func(m *migrate.Migrate, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version argument: %w", err)
		}
		return m.Force(v)
	})
	cmd.Args = cobra.ExactArgs(1)
	return cmd
}

func migrationCmd(use, short string, run func(m *migrate.Migrate, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")

			m, err := open(path)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := run(m, args); err != nil {
				return fmt.Errorf("migration %s failed: %w", cmd.Name(), err)
			}
			log.Printf("migration %s done", cmd.Name())
			return nil
		},
	}
}

func open(path string) (*migrate.Migrate, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	m, err := migrate.New("file://"+path, cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
