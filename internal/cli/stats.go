package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	output(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "db      %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(w, "runs    %d\n", stats.TotalRuns)
		fmt.Fprintf(w, "breeds  %d\n", stats.TotalBreeds)
		if l := stats.Latest; l != nil {
			fmt.Fprintf(w, "latest  %s: %d cats, %d dogs, small %d, medium %d, large %d, no size %d\n",
				l.RunID, l.Cats, l.Dogs, l.Sizes["small"], l.Sizes["medium"], l.Sizes["large"], l.WithoutSize)
		}
	})
}
