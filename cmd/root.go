package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/incidentloom-cli/internal/config"
	"github.com/KaramelBytes/incidentloom-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "incidentloom",
	Short: "IncidentLoom CLI: turn yearly incident-report workbooks into one clean dataset",
	Long: `IncidentLoom reads hospital incident-report workbooks (one sheet per year), finds the
header row of each sheet, maps its columns onto a canonical schema, normalizes categories
and dates, and merges every usable sheet into a single dataset for reporting and export.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.incidentloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
	} else {
		cfg = c
	}
	level := slog.LevelWarn
	jsonLogs := false
	if cfg != nil {
		level = logging.ParseLevel(cfg.LogLevel)
		jsonLogs = strings.EqualFold(cfg.OutputFormat, "json")
	}
	if debug {
		level = slog.LevelDebug
	}
	logging.Init(jsonLogs, level)
}

// currentConfig returns the loaded configuration, loading it on demand.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
