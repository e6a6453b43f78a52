// Package cmd contains the command line applications for the project.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeisme/mockmoments/pkg/configs"
	nlog "github.com/yeisme/mockmoments/pkg/log"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:           "mockmoments",
		Short:         "Generate mock moments, comments and echoes as CSV files or database rows",
		Version:       configs.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(cfgFile, cmd.Flags()); err != nil {
				return err
			}

			nlog.Init()

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".", "config file or directory containing config.{yaml,json,toml,env}")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	registerGenerateCommands()
	registerSchemaCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerNotifyCommands()
}

// Execute runs the root command.
func Execute() error {
	return Run(context.Background(), os.Args[1:], os.Stdout)
}

// Run runs the root command with args, writing command output to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	return rootCmd.ExecuteContext(ctx)
}
