// Package cli implements the breed-vibe CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/breed-vibe/internal/config"
	"github.com/rcliao/breed-vibe/internal/logging"
	"github.com/rcliao/breed-vibe/internal/scorer"
	"github.com/rcliao/breed-vibe/internal/store"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	formatFlag string

	cfg    = config.Default()
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "breed-vibe",
	Short: "Heuristic attribute scores for pet breeds",
	Long: "Scores a breed metadata sheet (energy, space, grooming, kid-friendliness, size, species) " +
		"from free-text care notes and measurement ranges. CSV in, CSV and JSON out. SQLite-backed history.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $BREED_VIBE_DB, config db, or ~/.breed-vibe/breeds.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $BREED_VIBE_CONFIG or ~/.breed-vibe/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	l, err := logging.New(c.LogLevel)
	if err != nil {
		return err
	}
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid --format %q (valid: json, text)", formatFlag)
	}
	cfg, logger = c, l
	logger.Debug("config loaded", zap.String("db", getDBPath()), zap.String("preset", cfg.Preset))
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DB
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// resolveTables applies --tables and --preset over the configured tables.
func resolveTables(cmd *cobra.Command) (scorer.Tables, error) {
	c := cfg
	if f := cmd.Flags().Lookup("tables"); f != nil && f.Changed {
		c.TablesFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("preset"); f != nil && f.Changed {
		c.Preset = f.Value.String()
		if !cmd.Flags().Changed("tables") {
			c.TablesFile = ""
		}
	}
	return c.Tables()
}

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// output writes v as JSON, or calls text when --format text is set.
func output(cmd *cobra.Command, v any, text func(w io.Writer)) {
	if formatFlag == "text" && text != nil {
		text(cmd.OutOrStdout())
		return
	}
	printJSON(cmd.OutOrStdout(), v)
}

func exitErr(msg string, err error) {
	logger.Debug(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
