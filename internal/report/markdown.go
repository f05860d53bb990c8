package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/charmbracelet/glamour"
	"github.com/nao1215/markdown"
)

// defaultWordWrap is the column glamour wraps rendered output at.
const defaultWordWrap = 80

const shellHighlight = markdown.SyntaxHighlight("shell")

// MarkdownWriter writes the report as GitHub flavored Markdown, optionally
// rendered for the terminal.
type MarkdownWriter struct {
	baseWriter

	render   bool
	style    string
	wordWrap int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithRender renders the Markdown with glamour before writing. An empty
// style picks one based on the terminal background.
func WithRender(style string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.render = true
		w.style = style
	}
}

// WithWordWrap sets the rendered line width.
func WithWordWrap(width int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.wordWrap = width
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		wordWrap:   defaultWordWrap,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *MarkdownWriter) Write(report *models.Report) (int, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	if report.Branch != "" {
		md.H1(fmt.Sprintf("%s (%s)", report.Repository, report.Branch))
	} else {
		md.H1(report.Repository)
	}
	md.PlainText("")

	purpose := report.Findings.Purpose
	if purpose == "" {
		purpose = analyzer.UnknownPurpose
	}
	md.H2(LabelPurpose)
	md.PlainText("")
	md.PlainText(purpose)
	md.PlainText("")

	md.H2(LabelStack)
	md.PlainText("")
	writeList(md, report.Findings.Stack)

	md.H2(LabelRun)
	md.PlainText("")
	if len(report.Findings.RunInstructions) == 0 {
		md.PlainText(NoneDetected)
		md.PlainText("")
	}
	for _, snippet := range report.Findings.RunInstructions {
		md.CodeBlocks(shellHighlight, snippet)
		md.PlainText("")
	}

	md.H2(LabelRisks)
	md.PlainText("")
	writeList(md, report.Findings.Risks)

	if err := md.Build(); err != nil {
		return 0, fmt.Errorf("failed to build markdown report: %w", err)
	}

	if !w.render {
		return w.output.Write(buf.Bytes())
	}

	out, err := w.renderTerminal(buf.String())
	if err != nil {
		return 0, err
	}
	return io.WriteString(w.output, out)
}

func (w *MarkdownWriter) renderTerminal(md string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if w.style != "" {
		styleOpt = glamour.WithStandardStyle(w.style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(w.wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func writeList(md *markdown.Markdown, items []string) {
	if len(items) == 0 {
		md.PlainText(NoneDetected)
	} else {
		md.BulletList(items...)
	}
	md.PlainText("")
}
