package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/breed-vibe/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a saved run",
		Long:  "Show run metadata and batch averages. Without an id, shows the latest run.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("breeds", false, "Include the scored breeds")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	withBreeds, _ := cmd.Flags().GetBool("breeds")
	var id string
	if len(args) > 0 {
		id = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if !withBreeds {
		run, err := s.GetRun(cmd.Context(), id)
		if err != nil {
			exitErr("show", err)
		}
		output(cmd, run, func(w io.Writer) { printRunText(w, run) })
		return
	}

	run, breeds, err := s.ExportRun(cmd.Context(), id)
	if err != nil {
		exitErr("show", err)
	}
	result := struct {
		*model.Run
		Breeds []model.ScoredBreed `json:"breeds"`
	}{run, breeds}
	output(cmd, result, func(w io.Writer) {
		printRunText(w, run)
		for _, b := range breeds {
			fmt.Fprintf(w, "  %3d %s\n", b.Seq, b.Name)
		}
	})
}

func printRunText(w io.Writer, r *model.Run) {
	fmt.Fprintf(w, "run       %s\n", r.ID)
	fmt.Fprintf(w, "created   %s\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "source    %s\n", r.Source)
	fmt.Fprintf(w, "preset    %s (%s)\n", r.Preset, r.ZeroMode)
	fmt.Fprintf(w, "breeds    %d\n", r.Total)
	fmt.Fprintf(w, "averages  weight %s, height %s, length %s\n",
		fmtAvg(r.AvgWeight), fmtAvg(r.AvgHeight), fmtAvg(r.AvgLength))
}

func fmtAvg(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
