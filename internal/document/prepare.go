package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prepare converts a raw text file into a tagged document: blank lines
// are dropped, each remaining line is trimmed and wrapped in a p tag
// with a 1-based data-line identity. Returns the number of tagged
// lines written.
func Prepare(inputPath, outputPath string) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read source text: %w", err)
	}

	raw := strings.ReplaceAll(string(data), "\r\n", "\n")

	var sb strings.Builder
	lineNumber := 1
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<p data-line="%d">%s</p>`+"\n", lineNumber, trimmed))
		lineNumber++
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return 0, fmt.Errorf("failed to write tagged document: %w", err)
	}

	return lineNumber - 1, nil
}

// ExportPlainText writes the document's plain-text rendering into
// exportDir under the document's own file name.
func (d *Document) ExportPlainText(exportDir string) error {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	outputPath := filepath.Join(exportDir, filepath.Base(d.Path))
	if err := os.WriteFile(outputPath, []byte(d.PlainText()), 0644); err != nil {
		return fmt.Errorf("failed to write plain text export: %w", err)
	}
	return nil
}
