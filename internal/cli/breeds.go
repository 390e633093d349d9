package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/breed-vibe/internal/model"
	"github.com/rcliao/breed-vibe/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "breeds [query]",
		Short: "List scored breeds from a saved run",
		Long:  "List breeds of a run (latest by default). An optional query matches name or care text.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runBreeds,
	}

	cmd.Flags().StringP("run", "r", "", "Run id (default: latest)")
	cmd.Flags().StringP("species", "s", "", "Filter by species: cat or dog")
	cmd.Flags().String("size", "", "Filter by size: small, medium, large")
	cmd.Flags().IntP("limit", "l", 0, "Max results (default 1000)")

	RootCmd.AddCommand(cmd)
}

func runBreeds(cmd *cobra.Command, args []string) {
	runID, _ := cmd.Flags().GetString("run")
	species, _ := cmd.Flags().GetString("species")
	size, _ := cmd.Flags().GetString("size")
	limit, _ := cmd.Flags().GetInt("limit")

	var query string
	if len(args) > 0 {
		query = args[0]
	}
	if size != "" && !model.ValidSizes[model.SizeLabel(size)] {
		exitErr("breeds", fmt.Errorf("invalid size %q (valid: small, medium, large)", size))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	breeds, err := s.ListBreeds(cmd.Context(), store.ListParams{
		RunID:   runID,
		Species: species,
		Size:    model.SizeLabel(size),
		Query:   query,
		Limit:   limit,
	})
	if err != nil {
		exitErr("breeds", err)
	}

	output(cmd, breeds, func(w io.Writer) {
		for _, b := range breeds {
			label := string(b.Scores.Size)
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(w, "%3d  %-4s %-6s E%d S%d G%d K%d  %s\n",
				b.Seq, b.Species(), label,
				b.Scores.Energy, b.Scores.Space, b.Scores.Grooming, b.Scores.KidFriendly, b.Name)
		}
	})
}
