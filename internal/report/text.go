package report

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
)

// templateFS embeds the plain text report template.
//
//go:embed templates/report.txt.tmpl
var templateFS embed.FS

var textTemplate = template.Must(
	template.New("report.txt.tmpl").Funcs(template.FuncMap{
		"inc":    func(i int) int { return i + 1 },
		"indent": indent,
		"none":   func() string { return NoneDetected },
	}).ParseFS(templateFS, "templates/report.txt.tmpl"),
)

// TextWriter writes the default human-readable report.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

func (w *TextWriter) Write(report *models.Report) (int, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, newReportViewModel(report)); err != nil {
		return 0, fmt.Errorf("failed to render report: %w", err)
	}
	return w.output.Write(buf.Bytes())
}

// indent prefixes every line of a snippet with four spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}
