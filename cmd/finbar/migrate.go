package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"finbar/internal/app/di"
	"finbar/internal/platform/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Open(cfg.DB)
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			return err
		}
		slog.Info("migration complete", "driver", cfg.DB.Driver)
		return nil
	},
}
