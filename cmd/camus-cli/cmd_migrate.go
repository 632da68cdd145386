package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janhq/camus/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema migrations",
	Long:  `Apply, roll back or inspect the embedded SQL migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE:  runMigrateDown,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied migration version",
	RunE:  runMigrateVersion,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}

func withMigrator(cmd *cobra.Command, fn func(mg *database.Migrator) error) (err error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	mg, err := database.NewMigrator(cmd.Context(), rt.db, rt.log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := mg.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(mg)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	return withMigrator(cmd, func(mg *database.Migrator) error {
		return mg.Up()
	})
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	return withMigrator(cmd, func(mg *database.Migrator) error {
		if err := mg.Down(steps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
		return nil
	})
}

func runMigrateVersion(cmd *cobra.Command, args []string) error {
	return withMigrator(cmd, func(mg *database.Migrator) error {
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version: %d\n", version)
		if dirty {
			fmt.Fprintln(cmd.OutOrStdout(), "state:   dirty")
		}
		return nil
	})
}
