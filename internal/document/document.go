// Package document holds the in-memory model of a line-tagged document.
// Each translatable unit is one line of the form
//
//	<p data-line="42">text</p>
//
// where the data-line attribute is the stable identity used to map
// translated segments back onto their original positions.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

// Line is one raw markup line at a fixed position. Lines are immutable
// per processing pass; a successful reinsertion replaces the whole Raw
// string.
type Line struct {
	Index int
	Raw   string
}

// Identity returns the line's numeric data-line identity, or
// segment.NoIdentity when absent.
func (l Line) Identity() int {
	return segment.ExtractIdentity(l.Raw)
}

// Text returns the plain-text payload between the line's tags.
func (l Line) Text() string {
	return segment.ExtractText(l.Raw)
}

// Document is an ordered sequence of lines, owned exclusively by the
// worker processing it and persisted back to the path it was read from.
type Document struct {
	Path  string
	Lines []Line
}

// Load reads a tagged document from disk. Identity attributes are
// normalized on read so downstream matching always sees canonical
// quoting.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	raw := strings.ReplaceAll(string(data), "\r\n", "\n")
	rawLines := strings.Split(raw, "\n")
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	lines := make([]Line, len(rawLines))
	for i, rawLine := range rawLines {
		lines[i] = Line{Index: i, Raw: segment.NormalizeIdentity(rawLine)}
	}

	return &Document{Path: path, Lines: lines}, nil
}

// Save writes the document back to its own path, replacing the file
// wholesale. Called after every batch so a crash loses at most one
// in-flight batch.
func (d *Document) Save() error {
	var sb strings.Builder
	for _, line := range d.Lines {
		sb.WriteString(line.Raw)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(d.Path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Replace swaps the markup at the given position. Identity quoting is
// normalized on write, mirroring Load.
func (d *Document) Replace(index int, markup string) {
	if index < 0 || index >= len(d.Lines) {
		return
	}
	d.Lines[index] = Line{Index: index, Raw: segment.NormalizeIdentity(markup)}
}

// Texts returns the plain-text payloads of all lines, in order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		texts[i] = line.Text()
	}
	return texts
}

// Pending is one line that still needs translation, carrying everything
// a batch request needs: original position, raw markup and identity.
type Pending struct {
	Index    int
	Raw      string
	Identity int
}

// Pending returns the lines whose payload is still in the direction's
// source language, in document order.
func (d *Document) Pending(dir segment.Direction) []Pending {
	var pending []Pending
	for _, line := range d.Lines {
		if segment.NeedsTranslation(dir, line.Raw) {
			pending = append(pending, Pending{
				Index:    line.Index,
				Raw:      line.Raw,
				Identity: line.Identity(),
			})
		}
	}
	return pending
}

// PlainText strips all markup and joins the non-empty payloads with
// blank lines, producing the reader-facing export format.
func (d *Document) PlainText() string {
	var payloads []string
	for _, line := range d.Lines {
		if text := segment.StripTags(line.Raw); text != "" {
			payloads = append(payloads, text)
		}
	}
	return strings.Join(payloads, "\n\n")
}
