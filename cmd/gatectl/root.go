package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gate-tracker-server/config"
	"gate-tracker-server/suggest"
)

var rootCmd = &cobra.Command{
	Use:          "gatectl",
	Short:        "GATE question pipeline",
	Long:         "gatectl extracts, parses, finalizes and annotates GATE exam papers for bulk import.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tokenCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) *suggest.Engine {
	return suggest.NewEngine().WithReviewThreshold(cfg.Suggest.ReviewThreshold)
}

// outputPath returns args[1] when given, else input with its extension replaced by suffix.
func outputPath(args []string, suffix string) string {
	if len(args) > 1 {
		return args[1]
	}
	return strings.TrimSuffix(args[0], filepath.Ext(args[0])) + suffix
}
