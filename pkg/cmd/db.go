package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/model"
	"github.com/yeisme/mockmoments/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered database types",
		Aliases: []string{"list", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")

			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType))
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the tables in the configured database",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg := configs.GetConfig()

			client, err := db.New(cmd.Context(), cfg.DB, db.WithDebug(cfg.Debug))
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, client.Close()) }()

			if err := client.WithContext(cmd.Context()).AutoMigrate(model.Models()...); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(model.Models()))

			return nil
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
