package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/UnitVectorY-Labs/repoexplain/internal/config"
	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolReadme = "# Tool\n\nTool prints things.\n\n## Install\n\n```bash\ngo install example.com/tool@latest\n```\n\n## License\n\nMIT\n"

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/tool", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name":"tool","default_branch":"main","language":"Go"}`)
	})
	mux.HandleFunc("GET /repos/octo/tool/readme", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","path":"README.md","content":%q}`,
			base64.StdEncoding.EncodeToString([]byte(toolReadme)))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// emptyConfig keeps a developer's own config files out of the test.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	srv := newGitHubServer(t)
	common := []string{"--api-url", srv.URL, "--config", emptyConfig(t), "--no-tree"}

	tests := []struct {
		name       string
		args       []string
		want       int
		wantStdout []string
		wantStderr string
	}{
		{
			name:       "missing argument",
			args:       []string{"explain"},
			want:       exitInvalidUsage,
			wantStderr: "invalid repository reference",
		},
		{
			name:       "malformed reference",
			args:       []string{"explain", "octo"},
			want:       exitInvalidUsage,
			wantStderr: "invalid repository reference",
		},
		{
			name: "too many arguments",
			args: []string{"explain", "octo/tool", "octo/other"},
			want: exitInvalidUsage,
		},
		{
			name:       "success",
			args:       append([]string{"explain", "octo/tool"}, common...),
			want:       exitOK,
			wantStdout: []string{"Repository: octo/tool (branch: main)", "Purpose:", "Stack:", "How to Run:", "Gaps/Risks:", "  - Go"},
		},
		{
			name:       "url reference",
			args:       append([]string{"explain", "https://github.com/octo/tool.git"}, common...),
			want:       exitOK,
			wantStdout: []string{"Repository: octo/tool"},
		},
		{
			name:       "json output",
			args:       append([]string{"explain", "octo/tool", "--json"}, common...),
			want:       exitOK,
			wantStdout: []string{`"repository": "octo/tool"`, `"run_instructions": [`},
		},
		{
			name:       "repository not found",
			args:       append([]string{"explain", "octo/missing"}, common...),
			want:       exitFailure,
			wantStderr: "not found",
		},
		{
			name:       "conflicting formats",
			args:       append([]string{"explain", "octo/tool", "--json", "--markdown"}, common...),
			want:       exitFailure,
			wantStderr: "conflicting report formats",
		},
		{
			name:       "missing explicit config",
			args:       []string{"explain", "octo/tool", "--config", "/does/not/exist.yaml"},
			want:       exitFailure,
			wantStderr: "configuration file not found",
		},
		{
			name: "unknown command",
			args: []string{"describe", "octo/tool"},
			want: exitFailure,
		},
		{
			name:       "version",
			args:       []string{"version"},
			want:       exitOK,
			wantStdout: []string{"repoexplain version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.want, code, "stderr: %s", stderr.String())
			for _, s := range tt.wantStdout {
				assert.Contains(t, stdout.String(), s)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
			if tt.want != exitOK {
				assert.Empty(t, stdout.String(), "no report on failure")
			}
		})
	}
}

func TestRun_ReportSectionOrder(t *testing.T) {
	t.Parallel()

	srv := newGitHubServer(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"explain", "octo/tool", "--api-url", srv.URL, "--config", emptyConfig(t), "--no-tree"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	last := -1
	for _, label := range []string{"Purpose:", "Stack:", "How to Run:", "Gaps/Risks:"} {
		idx := strings.Index(out, label)
		require.Greater(t, idx, last, "label %q", label)
		last = idx
	}
	assert.Contains(t, out, "    go install example.com/tool@latest")
	assert.Contains(t, out, "no visible test instructions")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, exitInvalidUsage, exitCode(fmt.Errorf("parse: %w", models.ErrInvalidReference)))
	assert.Equal(t, exitFailure, exitCode(fmt.Errorf("boom")))
}

func TestBuildConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: 30s\nbranches: [develop]\nfetch_tree: false\n"), 0o600))

	// Empty values count as unset.
	for _, key := range []string{"REPOEXPLAIN_TIMEOUT", "REPOEXPLAIN_TOKEN", "GITHUB_TOKEN", "REPOEXPLAIN_BRANCH", "REPOEXPLAIN_API_URL", "REPOEXPLAIN_NO_TREE", "REPOEXPLAIN_NO_METADATA", "REPOEXPLAIN_JSON", "REPOEXPLAIN_MARKDOWN", "REPOEXPLAIN_RENDER"} {
		t.Setenv(key, "")
	}

	parse := func(t *testing.T, args ...string) *config.Config {
		t.Helper()
		cmd := NewExplainCmd()
		require.NoError(t, cmd.ParseFlags(append([]string{"--config", path}, args...)))
		cfg, err := buildConfig(cmd)
		require.NoError(t, err)
		return cfg
	}

	t.Run("file over defaults", func(t *testing.T) {
		got := parse(t)
		assert.Equal(t, 30*time.Second, got.Timeout)
		assert.Equal(t, []string{"develop"}, got.Branches)
		assert.False(t, got.FetchTree)
		assert.True(t, got.FetchMetadata)
		assert.Empty(t, got.Token)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("REPOEXPLAIN_TIMEOUT", "20s")
		t.Setenv("GITHUB_TOKEN", "from-github-env")
		got := parse(t)
		assert.Equal(t, 20*time.Second, got.Timeout)
		assert.Equal(t, "from-github-env", got.Token)
	})

	t.Run("own token env wins over GITHUB_TOKEN", func(t *testing.T) {
		t.Setenv("REPOEXPLAIN_TOKEN", "from-own-env")
		t.Setenv("GITHUB_TOKEN", "from-github-env")
		assert.Equal(t, "from-own-env", parse(t).Token)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("REPOEXPLAIN_TIMEOUT", "20s")
		t.Setenv("GITHUB_TOKEN", "from-github-env")
		got := parse(t, "--timeout", "10s", "--token", "from-flag")
		assert.Equal(t, 10*time.Second, got.Timeout)
		assert.Equal(t, "from-flag", got.Token)
	})

	t.Run("render implies markdown", func(t *testing.T) {
		got := parse(t, "--render")
		assert.True(t, got.Render)
		assert.True(t, got.MarkdownReport)
	})
}
