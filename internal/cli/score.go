package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/breed-vibe/internal/model"
	"github.com/rcliao/breed-vibe/internal/scorer"
	"github.com/rcliao/breed-vibe/internal/store"
	"github.com/rcliao/breed-vibe/internal/tabular"
)

type scoreReport struct {
	OK       bool            `json:"ok"`
	In       string          `json:"in"`
	Out      string          `json:"out"`
	Rows     int             `json:"rows"`
	Skipped  int             `json:"skipped"`
	Ignored  []string        `json:"ignored_columns,omitempty"`
	Preset   string          `json:"preset"`
	ZeroMode scorer.ZeroMode `json:"zero_mode"`
	Averages scorer.Averages `json:"averages"`
	Summary  scorer.Summary  `json:"summary"`
	RunID    string          `json:"run_id,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a breed sheet",
		Long: "Read a breed metadata CSV, derive energy, space, grooming, kid-friendliness, size and species " +
			"for every row, and write the scored CSV. Prints a JSON summary.",
		Run: runScore,
	}

	cmd.Flags().StringP("in", "i", "", "Input CSV (required)")
	cmd.Flags().StringP("out", "o", "", "Output CSV (default: <in>_scored.csv)")
	cmd.Flags().Bool("in-place", false, "Overwrite the input file")
	cmd.Flags().StringP("preset", "p", "", "Keyword preset: current, exhaustive, legacy")
	cmd.Flags().String("tables", "", "YAML keyword tables file")
	cmd.Flags().Bool("strict-zero", false, "Treat zero measurements as real values in the size index")
	cmd.Flags().Bool("save", false, "Record the run in the database")

	cmd.MarkFlagRequired("in")
	cmd.MarkFlagsMutuallyExclusive("out", "in-place")

	RootCmd.AddCommand(cmd)
}

func defaultOutPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_scored" + ext
}

// newScorer builds a scorer from flags layered over the config.
func newScorer(cmd *cobra.Command) (*scorer.Scorer, error) {
	tables, err := resolveTables(cmd)
	if err != nil {
		return nil, err
	}
	mode := cfg.ZeroMode()
	if cmd.Flags().Changed("strict-zero") {
		mode = scorer.ZeroAsMissing
		if strict, _ := cmd.Flags().GetBool("strict-zero"); strict {
			mode = scorer.StrictZero
		}
	}
	return scorer.New(scorer.Options{Tables: tables, ZeroMode: mode}), nil
}

func runScore(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	inPlace, _ := cmd.Flags().GetBool("in-place")
	save, _ := cmd.Flags().GetBool("save")

	switch {
	case inPlace:
		out = in
	case out == "":
		out = defaultOutPath(in)
	}

	sc, err := newScorer(cmd)
	if err != nil {
		exitErr("load tables", err)
	}

	breeds, st, err := tabular.ReadFile(in)
	if err != nil {
		exitErr("read", err)
	}
	if len(st.Ignored) > 0 {
		logger.Warn("ignoring unknown columns", zap.Strings("columns", st.Ignored))
	}
	if st.Skipped > 0 {
		logger.Warn("skipped rows without STT or name", zap.Int("skipped", st.Skipped))
	}

	res := sc.ScoreBatch(breeds)
	logSizeGaps(res.Breeds)

	if err := tabular.WriteFile(out, res.Breeds); err != nil {
		exitErr("write", err)
	}

	report := scoreReport{
		OK:       true,
		In:       in,
		Out:      out,
		Rows:     st.Rows,
		Skipped:  st.Skipped,
		Ignored:  st.Ignored,
		Preset:   sc.Tables().Preset,
		ZeroMode: sc.ZeroMode(),
		Averages: res.Averages,
		Summary:  res.Summary,
	}

	if save {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		run, err := s.SaveRun(cmd.Context(), store.SaveParams{
			Source:   in,
			Preset:   report.Preset,
			ZeroMode: string(report.ZeroMode),
			Result:   res,
		})
		if err != nil {
			exitErr("save run", err)
		}
		report.RunID = run.ID
	}

	logger.Info("scored breeds",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("rows", report.Rows),
		zap.Int("cats", res.Summary.Cats),
		zap.Int("dogs", res.Summary.Dogs),
	)

	output(cmd, report, func(w io.Writer) {
		fmt.Fprintf(w, "scored %d rows (%d skipped) -> %s\n", report.Rows, report.Skipped, report.Out)
		fmt.Fprintf(w, "cats %d, dogs %d, without size %d\n", res.Summary.Cats, res.Summary.Dogs, res.Summary.WithoutSize)
		if report.RunID != "" {
			fmt.Fprintf(w, "run %s\n", report.RunID)
		}
	})
}

func logSizeGaps(rows []model.ScoredBreed) {
	for _, r := range rows {
		if r.Scores.Size == model.SizeNone {
			logger.Debug("no size index", zap.Int("seq", r.Seq), zap.String("name", r.Name))
		}
	}
}
