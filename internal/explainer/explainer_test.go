package explainer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/fetcher"
	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/UnitVectorY-Labs/repoexplain/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	content *models.ReadmeContent
	err     error
	got     models.RepoRef
}

func (f *fakeFetcher) Fetch(_ context.Context, ref models.RepoRef) (*models.ReadmeContent, error) {
	f.got = ref
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

type errWriter struct{}

func (errWriter) Write(*models.Report) (int, error) { return 0, errors.New("closed pipe") }

var ref = models.RepoRef{Owner: "octo", Name: "tool"}

func TestRun_WritesReport(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{content: &models.ReadmeContent{
		Branch: "master",
		Text:   "# Tool\n\nTool prints things.\n\n## Usage\n\n```sh\ntool print\n```\n",
	}}
	var buf bytes.Buffer
	e := New(f, analyzer.New(), report.NewTextWriter(&buf), nil)

	require.NoError(t, e.Run(context.Background(), ref))
	assert.Equal(t, ref, f.got)

	out := buf.String()
	assert.Contains(t, out, "Repository: octo/tool (branch: master)")
	assert.Contains(t, out, "Purpose:\n  Tool prints things.\n")
	assert.Contains(t, out, "    tool print")
}

func TestRun_EmptyReadme(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{content: &models.ReadmeContent{Branch: "main"}}
	var buf bytes.Buffer
	e := New(f, analyzer.New(), report.NewJSONWriter(&buf), nil)

	require.NoError(t, e.Run(context.Background(), ref))
	assert.JSONEq(t, `{
		"repository": "octo/tool",
		"branch": "main",
		"findings": {
			"purpose": "unknown",
			"stack": [],
			"run_instructions": [],
			"risks": ["README missing or empty"]
		}
	}`, buf.String())
}

func TestRun_FetchErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{fetcher.ErrNotFound, fetcher.ErrRateLimited, fetcher.ErrNetwork} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			t.Parallel()

			f := &fakeFetcher{err: fmt.Errorf("fetch README of octo/tool: %w", sentinel)}
			var buf bytes.Buffer
			e := New(f, analyzer.New(), report.NewTextWriter(&buf), nil)

			err := e.Run(context.Background(), ref)
			require.ErrorIs(t, err, sentinel)
			assert.Zero(t, buf.Len(), "no report on fetch failure")
		})
	}
}

func TestRun_CanceledBeforeWrite(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{content: &models.ReadmeContent{Text: "Tool."}}
	var buf bytes.Buffer
	e := New(f, analyzer.New(), report.NewTextWriter(&buf), nil)

	require.ErrorIs(t, e.Run(ctx, ref), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestRun_WriteError(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{content: &models.ReadmeContent{Text: "Tool."}}
	e := New(f, analyzer.New(), errWriter{}, nil)

	err := e.Run(context.Background(), ref)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}
