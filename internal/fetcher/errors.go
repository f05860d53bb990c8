package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// Fetch errors. Every error returned by Fetch wraps exactly one of these.
var (
	// ErrNotFound is returned when the repository or its README does not exist.
	ErrNotFound = errors.New("repository or README not found")

	// ErrRateLimited is returned when GitHub refuses the request because of
	// rate limiting or missing permissions. A token usually helps.
	ErrRateLimited = errors.New("rate limited by GitHub: set GITHUB_TOKEN to raise the limit")

	// ErrNetwork covers transport failures, server errors and undecodable
	// responses.
	ErrNetwork = errors.New("network error")
)

// classify maps a go-github error onto the fetch error taxonomy, keeping the
// original error in the chain.
func classify(err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
	)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
