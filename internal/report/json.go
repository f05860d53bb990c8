package report

import (
	"encoding/json"
	"io"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
)

// JSONWriter outputs the report as a single JSON document.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *JSONWriter) Write(report *models.Report) (int, error) {
	r := *report
	r.Findings = normalizeFindings(r.Findings)

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(r, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// normalizeFindings turns nil lists into empty ones so they encode as [].
func normalizeFindings(f models.Findings) models.Findings {
	if f.Stack == nil {
		f.Stack = []string{}
	}
	if f.RunInstructions == nil {
		f.RunInstructions = []string{}
	}
	if f.Risks == nil {
		f.Risks = []string{}
	}
	return f
}
