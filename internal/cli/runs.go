package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved scoring runs",
		Run:   runRuns,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output run ids")

	RootCmd.AddCommand(cmd)
}

func runRuns(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context(), limit)
	if err != nil {
		exitErr("runs", err)
	}

	if idsOnly {
		for _, r := range runs {
			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
		}
		return
	}

	output(cmd, runs, func(w io.Writer) {
		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s  %-10s %3d breeds  %s\n",
				r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Preset, r.Total, r.Source)
		}
	})
}
