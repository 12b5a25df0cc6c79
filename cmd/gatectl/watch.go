package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"gate-tracker-server/db"
	"gate-tracker-server/ingestion"
)

var watchCmd = &cobra.Command{
	Use:   "watch [inbox-dir]",
	Short: "Process every paper dropped into the inbox",
	Long: "watch runs extract, parse, finalize and suggest for each .pdf or .txt created in the inbox " +
		"and writes <name>_suggested.json to the output directory. A meta.yaml in the inbox supplies metadata.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		inbox := cfg.Ingestion.InboxDir
		if len(args) == 1 {
			inbox = args[0]
		}
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.Ingestion.OutputDir = out
		}
		meta, err := finalizeFlags(cmd)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(inbox, 0o755); err != nil {
			return fmt.Errorf("create inbox %s: %w", inbox, err)
		}

		p := &ingestion.Pipeline{
			PdftotextPath: cfg.Ingestion.PdftotextPath,
			OutputDir:     cfg.Ingestion.OutputDir,
			Meta:          meta,
			Engine:        newEngine(cfg),
		}

		ctx := cmd.Context()
		if logDB, _ := cmd.Flags().GetBool("log-db"); logDB {
			store, err := db.InitDB(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer store.Close()
			p.Errors = store
		}

		if err := p.Watch(ctx, inbox); err != nil {
			return err
		}
		log.Println("Watcher stopped.")
		return nil
	},
}

func init() {
	addFinalizeFlags(watchCmd)
	watchCmd.Flags().String("out", "", "Output directory (overrides INGESTION.OUTPUT_DIR)")
	watchCmd.Flags().Bool("log-db", false, "Record pipeline failures in the error_logs table")
}
