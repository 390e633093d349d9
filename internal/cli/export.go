package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/breed-vibe/internal/catalog"
	"github.com/rcliao/breed-vibe/internal/model"
	"github.com/rcliao/breed-vibe/internal/tabular"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a pet catalog as JSON",
		Long: "Build the pet catalog JSON from a saved run (latest by default) or by scoring a CSV with --in. " +
			"Writes to stdout unless --out is given.",
		Run: runExport,
	}

	cmd.Flags().StringP("run", "r", "", "Run id (default: latest)")
	cmd.Flags().StringP("in", "i", "", "Score this CSV instead of reading a saved run")
	cmd.Flags().StringP("out", "o", "", "Output JSON file")
	cmd.Flags().StringP("preset", "p", "", "Keyword preset used with --in")
	cmd.Flags().String("tables", "", "YAML keyword tables file used with --in")
	cmd.Flags().Bool("strict-zero", false, "Strict zero handling used with --in")

	cmd.MarkFlagsMutuallyExclusive("run", "in")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	runID, _ := cmd.Flags().GetString("run")
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	var rows []model.ScoredBreed
	if in != "" {
		sc, err := newScorer(cmd)
		if err != nil {
			exitErr("load tables", err)
		}
		breeds, _, err := tabular.ReadFile(in)
		if err != nil {
			exitErr("read", err)
		}
		rows = sc.ScoreBatch(breeds).Breeds
	} else {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		_, rows, err = s.ExportRun(cmd.Context(), runID)
		if err != nil {
			exitErr("export", err)
		}
	}

	pets := catalog.Build(rows)
	if out == "" {
		if err := catalog.Write(cmd.OutOrStdout(), pets); err != nil {
			exitErr("export", err)
		}
		return
	}

	if err := catalog.WriteFile(out, pets); err != nil {
		exitErr("export", err)
	}
	logger.Info("exported catalog", zap.String("out", out), zap.Int("pets", len(pets)))
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"out":%q,"exported":%d}`+"\n", out, len(pets))
}
