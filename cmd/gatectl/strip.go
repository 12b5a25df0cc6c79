package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gate-tracker-server/ingestion"
	"gate-tracker-server/models"
	"gate-tracker-server/suggest"
	"gate-tracker-server/utils"
)

var stripCmd = &cobra.Command{
	Use:   "strip <reviewed.json> [out.json]",
	Short: "Remove advisory suggestions from a reviewed file before bulk import",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := ingestion.LoadQuestions(args[0])
		if err != nil {
			return err
		}
		stripped := suggest.Strip(questions)
		for i := range stripped {
			stripped[i].Metadata = nil
		}

		unreviewed := 0
		for _, q := range stripped {
			if utils.StringValue(q.CorrectOption) == "" {
				unreviewed++
			}
		}

		out := outputPath(args, "_import.json")
		if err := ingestion.WriteJSON(out, models.BulkPayload{Questions: stripped}); err != nil {
			return err
		}
		fmt.Printf("Wrote %d questions to %s\n", len(stripped), out)
		if unreviewed > 0 {
			fmt.Printf("WARNING: %d questions still have no correctOption; the bulk import will reject the file until they are filled in\n", unreviewed)
		}
		return nil
	},
}
