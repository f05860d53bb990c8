package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/fetcher"
	"github.com/UnitVectorY-Labs/repoexplain/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, []string{"main", "master"}, cfg.Branches)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "repoexplain", cfg.UserAgent)
	assert.Equal(t, analyzer.DefaultPurposeMaxLength, cfg.PurposeMaxLength)
	assert.True(t, cfg.FetchMetadata)
	assert.True(t, cfg.FetchTree)
	assert.Equal(t, report.FormatText, cfg.Format())
	require.NoError(t, cfg.Validate())

	// Defaults must not alias the package-level slice.
	cfg.Branches[0] = "trunk"
	assert.Equal(t, "main", DefaultBranches[0])
	assert.Equal(t, "main", fetcher.DefaultBranches[0])
}

func TestNewConfig_MatchesFetcherDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	assert.Equal(t, fetcher.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, fetcher.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, fetcher.DefaultBranches, cfg.Branches)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, want: ErrInvalidTimeout},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, want: ErrInvalidTimeout},
		{name: "no branches", modify: func(c *Config) { c.Branches = nil }, want: ErrNoBranches},
		{name: "blank branch", modify: func(c *Config) { c.Branches = []string{"main", " "} }, want: ErrNoBranches},
		{name: "relative api url", modify: func(c *Config) { c.APIURL = "api.github.com" }, want: ErrInvalidAPIURL},
		{name: "ftp api url", modify: func(c *Config) { c.APIURL = "ftp://example.com/" }, want: ErrInvalidAPIURL},
		{name: "enterprise api url", modify: func(c *Config) { c.APIURL = "https://ghe.example.com/api/v3/" }},
		{name: "zero purpose length", modify: func(c *Config) { c.PurposeMaxLength = 0 }, want: ErrInvalidPurposeLength},
		{
			name:   "json and markdown",
			modify: func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			want:   ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_Format(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.MarkdownReport = true
	assert.Equal(t, report.FormatMarkdown, cfg.Format())

	cfg = NewConfig()
	cfg.JSONReport = true
	assert.Equal(t, report.FormatJSON, cfg.Format())
}

func TestConfig_StackRules(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.StackKeywords = map[string][]string{
		"Temporal": {"temporal"},
		"Bazel":    {"bazel", "bazelisk"},
	}

	assert.Equal(t, []analyzer.StackRule{
		{Technology: "Bazel", Keywords: []string{"bazel", "bazelisk"}},
		{Technology: "Temporal", Keywords: []string{"temporal"}},
	}, cfg.StackRules())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_Apply(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", `
api_url: https://ghe.example.com/api/v3/
branches: [develop, main]
timeout: 30s
user_agent: custom-agent
purpose_max_length: 80
fetch_metadata: false
stack:
  Temporal: [temporal, tctl]
`)

	f, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := NewConfig()
	require.NoError(t, f.Apply(cfg))

	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.APIURL)
	assert.Equal(t, []string{"develop", "main"}, cfg.Branches)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "custom-agent", cfg.UserAgent)
	assert.Equal(t, 80, cfg.PurposeMaxLength)
	assert.False(t, cfg.FetchMetadata)
	assert.True(t, cfg.FetchTree, "unset keys keep their defaults")
	assert.Equal(t, map[string][]string{"Temporal": {"temporal", "tctl"}}, cfg.StackKeywords)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)

	_, err = LoadConfigFile(writeFile(t, dir, "bad.yaml", "branches: [unclosed"))
	require.Error(t, err)

	f, err := LoadConfigFile(writeFile(t, dir, "timeout.yaml", "timeout: soon"))
	require.NoError(t, err)
	require.ErrorIs(t, f.Apply(NewConfig()), ErrInvalidTimeout)
}

func TestLoadConfigFile_Empty(t *testing.T) {
	t.Parallel()

	f, err := LoadConfigFile(writeFile(t, t.TempDir(), "empty.yaml", ""))
	require.NoError(t, err)

	cfg := NewConfig()
	require.NoError(t, f.Apply(cfg))
	assert.Equal(t, NewConfig(), cfg)
}

func TestFindConfigFile_Explicit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/does/not/exist.yaml", FindConfigFile("/does/not/exist.yaml"))
}

func TestFindConfigFile_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, DefaultConfigFile, "timeout: 5s\n")
	t.Chdir(dir)

	got := FindConfigFile("")
	gotInfo, err := os.Stat(got)
	require.NoError(t, err)
	wantInfo, err := os.Stat(want)
	require.NoError(t, err)
	assert.True(t, os.SameFile(gotInfo, wantInfo))
}
