package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yeisme/mockmoments/pkg/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "print the output files, tables and columns in write order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

		fmt.Fprintln(w, "KIND\tFILE\tTABLE\tCOLUMNS")

		for _, k := range model.Kinds() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k, k.FileName(), k.Table(), strings.Join(k.Headers(), ","))
		}

		return w.Flush()
	},
}

// registerSchemaCommands 注册 schema 命令.
func registerSchemaCommands() {
	rootCmd.AddCommand(schemaCmd)
}
