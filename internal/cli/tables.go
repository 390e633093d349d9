package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the active keyword tables as YAML",
		Long:  "Print keyword tables in the format accepted by --tables and the tables_file config key.",
		Run:   runTables,
	}

	cmd.Flags().StringP("preset", "p", "", "Keyword preset: current, exhaustive, legacy")
	cmd.Flags().String("tables", "", "YAML keyword tables file")

	RootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) {
	tables, err := resolveTables(cmd)
	if err != nil {
		exitErr("load tables", err)
	}
	if err := tables.Validate(); err != nil {
		exitErr("validate tables", err)
	}

	b, err := tables.YAML()
	if err != nil {
		exitErr("encode tables", err)
	}
	cmd.OutOrStdout().Write(b)
}
