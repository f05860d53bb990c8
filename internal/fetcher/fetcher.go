// Package fetcher downloads a repository README and best-effort metadata
// from the GitHub REST API.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/UnitVectorY-Labs/repoexplain/internal/readme"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds every HTTP request made by the Fetcher.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "repoexplain"
)

// DefaultBranches are tried in order when no branch is given and the
// repository metadata does not name a default branch.
var DefaultBranches = []string{"main", "master"}

// Options configures a Fetcher. The zero value talks to api.github.com
// unauthenticated with the defaults above.
type Options struct {
	Token            string
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	BranchCandidates []string
	FetchMetadata    bool
	FetchTree        bool
	Logger           *slog.Logger
}

// Fetcher retrieves README content for one repository at a time.
type Fetcher struct {
	client     *github.Client
	candidates []string
	metadata   bool
	tree       bool
	logger     *slog.Logger
}

// New creates a Fetcher. It fails only when BaseURL cannot be parsed.
func New(opts Options) (*Fetcher, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = timeout
	}
	client := github.NewClient(httpClient)

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	client.UserAgent = DefaultUserAgent
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}

	candidates := opts.BranchCandidates
	if len(candidates) == 0 {
		candidates = DefaultBranches
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Fetcher{
		client:     client,
		candidates: candidates,
		metadata:   opts.FetchMetadata,
		tree:       opts.FetchTree,
		logger:     logger,
	}, nil
}

// Fetch downloads the README of ref. The README is looked up on the
// requested branch, or on the primary branch with a single fallback to the
// next candidate when the first lookup returns 404.
func (f *Fetcher) Fetch(ctx context.Context, ref models.RepoRef) (*models.ReadmeContent, error) {
	content := &models.ReadmeContent{}

	primary := ref.Branch
	explicit := primary != ""

	if f.metadata {
		repo, _, err := f.client.Repositories.Get(ctx, ref.Owner, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("fetch repository %s: %w", ref.FullName(), classify(err))
		}
		content.Description = repo.GetDescription()
		content.Language = repo.GetLanguage()
		content.License = repo.GetLicense().GetSPDXID()
		if content.License == "NOASSERTION" {
			content.License = ""
		}
		content.Topics = repo.Topics
		if !explicit {
			primary = repo.GetDefaultBranch()
		}
		f.logger.Debug("fetched repository metadata",
			"repository", ref.FullName(),
			"default_branch", repo.GetDefaultBranch(),
			"language", content.Language,
		)
	}

	rc, branch, err := f.readme(ctx, ref, f.branchOrder(primary, explicit))
	if err != nil {
		return nil, err
	}

	text, err := rc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode README of %s: %w: %w", ref.FullName(), ErrNetwork, err)
	}

	text = strings.ToValidUTF8(text, "\uFFFD")
	doc := readme.Parse([]byte(text))
	content.Text = text
	content.Path = rc.GetPath()
	content.Branch = branch
	content.Blocks = doc.Blocks
	content.Badges = doc.Badges

	if f.tree {
		content.Paths = f.paths(ctx, ref, branch)
	}

	return content, nil
}

// branchOrder returns the branches to try, at most two.
func (f *Fetcher) branchOrder(primary string, explicit bool) []string {
	if explicit {
		return []string{primary}
	}
	if primary == "" {
		primary = f.candidates[0]
	}
	for _, c := range f.candidates {
		if c != primary {
			return []string{primary, c}
		}
	}
	return []string{primary}
}

func (f *Fetcher) readme(ctx context.Context, ref models.RepoRef, branches []string) (*github.RepositoryContent, string, error) {
	var lastErr error
	for _, branch := range branches {
		opts := &github.RepositoryContentGetOptions{Ref: branch}
		rc, _, err := f.client.Repositories.GetReadme(ctx, ref.Owner, ref.Name, opts)
		if err == nil {
			f.logger.Debug("fetched README", "repository", ref.FullName(), "branch", branch, "path", rc.GetPath())
			return rc, branch, nil
		}

		lastErr = classify(err)
		if !errors.Is(lastErr, ErrNotFound) {
			return nil, "", fmt.Errorf("fetch README of %s: %w", ref.FullName(), lastErr)
		}
		f.logger.Debug("README not found on branch", "repository", ref.FullName(), "branch", branch)
	}
	return nil, "", fmt.Errorf("fetch README of %s (tried %s): %w", ref.FullName(), strings.Join(branches, ", "), lastErr)
}

// paths lists the blob paths of branch. Failures are logged and ignored.
func (f *Fetcher) paths(ctx context.Context, ref models.RepoRef, branch string) []string {
	tree, _, err := f.client.Git.GetTree(ctx, ref.Owner, ref.Name, branch, true)
	if err != nil {
		f.logger.Warn("skipping repository tree", "repository", ref.FullName(), "branch", branch, "error", classify(err))
		return nil
	}
	if tree.GetTruncated() {
		f.logger.Debug("repository tree truncated", "repository", ref.FullName(), "entries", len(tree.Entries))
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			paths = append(paths, entry.GetPath())
		}
	}
	return paths
}
