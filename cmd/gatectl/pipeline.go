package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gate-tracker-server/ingestion"
)

var extractCmd = &cobra.Command{
	Use:   "extract <paper.pdf> [out.txt]",
	Short: "Extract text from a PDF paper",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text, err := ingestion.ExtractText(cmd.Context(), cfg.Ingestion.PdftotextPath, args[0])
		if err != nil {
			return err
		}
		out := outputPath(args, ".txt")
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Extracted %d characters to %s\n", len([]rune(text)), out)
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <paper.txt> [out.json]",
	Short: "Split extracted text into candidate questions",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		res := ingestion.ParseQuestions(string(data))
		for _, w := range res.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		if len(res.Questions) == 0 {
			return fmt.Errorf("no questions parsed from %s", args[0])
		}
		out := outputPath(args, "_questions.json")
		if err := ingestion.WriteJSON(out, res.Questions); err != nil {
			return err
		}
		fmt.Printf("Parsed %d questions (%d skipped) to %s\n", len(res.Questions), len(res.Warnings), out)
		return nil
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize <questions.json> [out.json]",
	Short: "Stamp subject, topic, year and marks for bulk import",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := ingestion.LoadQuestions(args[0])
		if err != nil {
			return err
		}
		meta, err := finalizeFlags(cmd)
		if err != nil {
			return err
		}
		payload := ingestion.Finalize(questions, meta)
		out := outputPath(args, "_bulk.json")
		if err := ingestion.WriteJSON(out, payload); err != nil {
			return err
		}
		if len(payload.Questions) > 0 {
			first := payload.Questions[0]
			fmt.Printf("Subject: %s\nTopic:   %s\nYear:    %d\nMarks:   %d\n", first.SubjectID, first.TopicID, first.Year, first.Marks)
		}
		fmt.Printf("Finalized %d questions to %s\n", len(payload.Questions), out)
		fmt.Println("Next: fill in correctOption (A/B/C/D) and solutionText for each question, then POST the file to /api/questions/bulk")
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <bulk.json> [out.json]",
	Short: "Attach advisory answer suggestions for review",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		questions, err := ingestion.LoadQuestions(args[0])
		if err != nil {
			return err
		}
		report := newEngine(cfg).RunBatch(questions)
		out := outputPath(args, "_suggested.json")
		if err := ingestion.WriteJSON(out, report); err != nil {
			return err
		}
		printSummary(report.Metadata.TotalQuestions, report.Metadata.Suggested, report.Metadata.HighConfidence, report.Metadata.LowConfidence, report.Metadata.NoSuggestion)
		fmt.Printf("Wrote %s\n", out)
		fmt.Println("WARNING:", report.Metadata.Warning)
		return nil
	},
}

func printSummary(total, suggested, high, low, none int) {
	fmt.Println("Suggestion summary")
	fmt.Println(strings.Repeat("─", 32))
	fmt.Printf("%-22s %d\n", "Total questions", total)
	fmt.Printf("%-22s %d\n", "With suggestions", suggested)
	fmt.Printf("%-22s %d\n", "High confidence", high)
	fmt.Printf("%-22s %d\n", "Needs manual review", low)
	fmt.Printf("%-22s %d\n", "No suggestion", none)
}

func finalizeFlags(cmd *cobra.Command) (ingestion.FinalizeConfig, error) {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	year, _ := cmd.Flags().GetInt("year")
	marks, _ := cmd.Flags().GetInt("marks")
	metaPath, _ := cmd.Flags().GetString("meta")

	meta := ingestion.FinalizeConfig{SubjectID: subject, TopicID: topic, Year: year, Marks: marks}
	if metaPath != "" {
		fileMeta, err := ingestion.LoadFinalizeConfig(metaPath)
		if err != nil {
			return meta, err
		}
		meta = meta.Merge(fileMeta)
	}
	if meta.Marks != 0 && meta.Marks != 1 && meta.Marks != 2 {
		return meta, fmt.Errorf("--marks must be 1 or 2, got %d", meta.Marks)
	}
	return meta, nil
}

func addFinalizeFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject", "", "Subject id (e.g. signals, digital)")
	cmd.Flags().String("topic", "", "Topic id (e.g. laplace, counters)")
	cmd.Flags().Int("year", 0, "Exam year (default: current year)")
	cmd.Flags().Int("marks", 0, "Marks per question, 1 or 2 (default: 1)")
	cmd.Flags().String("meta", "", "Path to a meta.yaml with the same fields")
}

func init() {
	addFinalizeFlags(finalizeCmd)
}
