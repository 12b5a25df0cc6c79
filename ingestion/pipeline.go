// Package ingestion turns exam papers into reviewable question files:
// extract text from a PDF, split it into questions, stamp metadata and
// attach advisory answer suggestions.
package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gate-tracker-server/suggest"
	"gate-tracker-server/utils"
)

const sourceName = "ingestion"

// ErrorLogger records pipeline failures. *db.Store satisfies it.
type ErrorLogger interface {
	LogError(ctx context.Context, source, filePath, errMsg, fixSug string)
}

// Pipeline runs a paper through extract, parse, finalize and suggest.
type Pipeline struct {
	PdftotextPath string
	OutputDir     string
	Meta          FinalizeConfig
	Engine        *suggest.Engine
	Errors        ErrorLogger // optional
}

// Result describes one processed file.
type Result struct {
	OutputPath string
	Report     suggest.Report
	Warnings   []string
}

// ProcessFile handles a .pdf or .txt paper and writes <name>_suggested.json
// into the output directory. A meta.yaml next to the paper, if present,
// supplies metadata not set on the pipeline.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (Result, error) {
	res, err := p.process(ctx, path)
	if err != nil && p.Errors != nil {
		p.Errors.LogError(ctx, sourceName, path, err.Error(), "Check that the file is a readable GATE paper with (A)-(D) options")
	}
	return res, err
}

func (p *Pipeline) process(ctx context.Context, path string) (Result, error) {
	var text string
	switch {
	case utils.HasExtension(path, ".pdf"):
		extracted, err := ExtractText(ctx, p.PdftotextPath, path)
		if err != nil {
			return Result{}, err
		}
		text = extracted
	case utils.HasExtension(path, ".txt"):
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		text = string(data)
	default:
		return Result{}, fmt.Errorf("unsupported file type: %s", path)
	}

	parsed := ParseQuestions(text)
	if len(parsed.Questions) == 0 {
		return Result{Warnings: parsed.Warnings}, fmt.Errorf("no questions parsed from %s", path)
	}

	meta := p.Meta
	metaPath := filepath.Join(filepath.Dir(path), "meta.yaml")
	if _, err := os.Stat(metaPath); err == nil {
		fileMeta, err := LoadFinalizeConfig(metaPath)
		if err != nil {
			return Result{}, err
		}
		meta = meta.Merge(fileMeta)
	}

	engine := p.Engine
	if engine == nil {
		engine = suggest.NewEngine()
	}
	report := engine.RunBatch(Finalize(parsed.Questions, meta).Questions)

	out := filepath.Join(p.OutputDir, SuggestedName(path))
	if err := WriteJSON(out, report); err != nil {
		return Result{}, err
	}
	log.Printf("Processed %s: %d questions, %d suggested, %d need review -> %s",
		path, report.Metadata.TotalQuestions, report.Metadata.Suggested, report.Metadata.LowConfidence, out)
	return Result{OutputPath: out, Report: report, Warnings: parsed.Warnings}, nil
}

// SuggestedName maps "papers/gate_2019.pdf" to "gate_2019_suggested.json".
func SuggestedName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_suggested.json"
}
