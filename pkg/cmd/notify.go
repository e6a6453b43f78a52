package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/mockmoments/pkg/internal/notify"
)

var (
	notifyCmd = &cobra.Command{
		Use:   "notify",
		Short: "Run event publishing related commands",
	}

	notifyListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered notify types",
		Aliases: []string{"list", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered notify types:")

			for _, t := range notify.GetRegisteredTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(t))
			}
		},
	}
)

// registerNotifyCommands 注册通知相关命令.
func registerNotifyCommands() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyListCmd)
}
