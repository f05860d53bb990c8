// Package explainer runs the fetch, analyze and report pipeline for a
// single repository.
package explainer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/UnitVectorY-Labs/repoexplain/internal/report"
)

// Fetcher retrieves README content for a repository.
type Fetcher interface {
	Fetch(ctx context.Context, ref models.RepoRef) (*models.ReadmeContent, error)
}

// Analyzer turns README content into Findings.
type Analyzer interface {
	Analyze(content *models.ReadmeContent) models.Findings
}

// Explainer wires a Fetcher, an Analyzer and a report Writer together.
type Explainer struct {
	fetcher  Fetcher
	analyzer Analyzer
	writer   report.Writer
	logger   *slog.Logger
}

// New creates an Explainer. A nil logger discards log output.
func New(fetcher Fetcher, analyzer Analyzer, writer report.Writer, logger *slog.Logger) *Explainer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Explainer{
		fetcher:  fetcher,
		analyzer: analyzer,
		writer:   writer,
		logger:   logger,
	}
}

// Run explains ref and writes the report. Fetch errors are returned as is
// so callers can match them with errors.Is. Nothing is written when ctx is
// done before the report is rendered.
func (e *Explainer) Run(ctx context.Context, ref models.RepoRef) error {
	e.logger.Debug("fetching README", "repository", ref.String())
	content, err := e.fetcher.Fetch(ctx, ref)
	if err != nil {
		return err
	}

	findings := e.analyzer.Analyze(content)
	e.logger.Debug("analyzed README",
		"repository", ref.FullName(),
		"branch", content.Branch,
		"stack", len(findings.Stack),
		"run_instructions", len(findings.RunInstructions),
		"risks", len(findings.Risks),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	rep := &models.Report{
		Repository: ref.FullName(),
		Branch:     content.Branch,
		Findings:   findings,
	}
	if _, err := e.writer.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
