// Package report renders an explained repository as text, Markdown or JSON.
// Every format carries the same four sections in the same order: Purpose,
// Stack, How to Run and Gaps/Risks.
package report

import (
	"io"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
)

// NoneDetected stands in for an empty list so the report shape never changes.
const NoneDetected = "none detected"

// Section labels, in output order.
const (
	LabelPurpose = "Purpose"
	LabelStack   = "Stack"
	LabelRun     = "How to Run"
	LabelRisks   = "Gaps/Risks"
)

// Format selects a Writer implementation.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Writer renders a Report to its destination. Implementations render into
// memory first and write the result in a single call.
type Writer interface {
	Write(report *models.Report) (int, error)
}

// Options tweaks the writer returned by NewWriter.
type Options struct {
	// Render pipes Markdown through the terminal renderer.
	Render bool

	// Style is the glamour style used when Render is set. Empty means auto.
	Style string
}

// NewWriter returns the Writer for format. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer, opts Options) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		if opts.Render {
			return NewMarkdownWriter(output, WithRender(opts.Style))
		}
		return NewMarkdownWriter(output)
	default:
		return NewTextWriter(output)
	}
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
