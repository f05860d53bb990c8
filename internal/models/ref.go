package models

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	urlPrefixes  = []string{"https://github.com/", "http://github.com/", "github.com/"}
)

// RepoRef identifies a repository on the hosting service.
type RepoRef struct {
	Owner  string
	Name   string
	Branch string
}

// ParseRepoRef builds a RepoRef from user input such as "pallets/flask" or
// "https://github.com/pallets/flask". branch may be empty.
func ParseRepoRef(input, branch string) (RepoRef, error) {
	s := strings.TrimSpace(input)
	for _, prefix := range urlPrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	owner, name, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(name, "/") {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, input)
	}
	if !ownerPattern.MatchString(owner) {
		return RepoRef{}, fmt.Errorf("%w: bad owner %q", ErrInvalidReference, owner)
	}
	if !namePattern.MatchString(name) || name == "." || name == ".." {
		return RepoRef{}, fmt.Errorf("%w: bad repository name %q", ErrInvalidReference, name)
	}

	return RepoRef{Owner: owner, Name: name, Branch: strings.TrimSpace(branch)}, nil
}

// FullName returns the owner/name form.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepoRef) String() string {
	if r.Branch == "" {
		return r.FullName()
	}
	return r.FullName() + "@" + r.Branch
}
