package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractText runs pdftotext over pdfPath and returns the cleaned text.
func ExtractText(ctx context.Context, pdftotextPath, pdfPath string) (string, error) {
	if pdftotextPath == "" {
		pdftotextPath = "pdftotext"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, pdftotextPath, "-layout", "-enc", "UTF-8", pdfPath, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for %s: %w: %s", pdfPath, err, strings.TrimSpace(stderr.String()))
	}
	return CleanText(stdout.String()), nil
}

// CleanText joins pages with a blank line and trims the result.
// pdftotext separates pages with a form feed.
func CleanText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	pages := strings.Split(raw, "\f")
	kept := pages[:0]
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimRight(p, " \n"))
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
