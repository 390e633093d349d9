package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Score a single care description",
		Long:  "Classify care text against the keyword tables. Reads stdin when no text is given.",
		Run:   runClassify,
	}

	cmd.Flags().StringP("preset", "p", "", "Keyword preset: current, exhaustive, legacy")
	cmd.Flags().String("tables", "", "YAML keyword tables file")

	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")
	if text == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			exitErr("read stdin", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("empty text, every table falls back to its default")
	}

	sc, err := newScorer(cmd)
	if err != nil {
		exitErr("load tables", err)
	}

	scores := sc.Classify(text)
	result := struct {
		Energy      int `json:"energy"`
		Space       int `json:"space"`
		Grooming    int `json:"grooming"`
		KidFriendly int `json:"kid_friendly"`
	}{scores.Energy, scores.Space, scores.Grooming, scores.KidFriendly}

	output(cmd, result, func(w io.Writer) {
		fmt.Fprintf(w, "energy=%d space=%d grooming=%d kid_friendly=%d\n",
			result.Energy, result.Space, result.Grooming, result.KidFriendly)
	})
}
