// Package github is a sync domain whose source of truth is the GitHub
// GraphQL API. Clients browse the repositories of an owner and the pull
// requests of a repository and may rename pull requests.
package github

import (
	"errors"
	"time"
)

// Query and mutation names registered by [Domain.Register].
const (
	QueryGetRepos         = "getRepos"
	QueryGetPRs           = "getPRs"
	MutationUpdatePRTitle = "updatePRTitle"
)

const (
	defaultFirst = 20
	maxFirst     = 100

	repoKeyPrefix        = "repo/"
	pullRequestKeyPrefix = "pr/"
)

// Values of [GetReposParams.Privacy].
const (
	PrivacyPublic  = "PUBLIC"
	PrivacyPrivate = "PRIVATE"
)

var (
	ErrEmptyOwner   = errors.New("github: owner is required")
	ErrEmptyName    = errors.New("github: repository name is required")
	ErrEmptyPRID    = errors.New("github: pull request id is required")
	ErrEmptyTitle   = errors.New("github: title is required")
	ErrInvalidFirst = errors.New("github: first must be between 0 and 100")
	ErrBadPrivacy   = errors.New("github: privacy must be PUBLIC or PRIVATE")
)

// Repo is the value synchronized for a repository.
type Repo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Owner       string  `json:"owner"`
	Description *string `json:"description"`
	IsPrivate   bool    `json:"isPrivate"`
	UpdatedAt   string  `json:"updatedAt"`
}

// PR is the value synchronized for a pull request.
type PR struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Number    int    `json:"number"`
	UpdatedAt string `json:"updatedAt"`
}

// GetReposParams selects repositories of Owner. Privacy is empty (any),
// PUBLIC or PRIVATE. Search matches name and description.
type GetReposParams struct {
	Owner   string `json:"owner"`
	First   int    `json:"first"`
	Privacy string `json:"privacy,omitempty"`
	Search  string `json:"search,omitempty"`
}

// GetPRsParams selects pull requests of Owner/Name. Search matches titles.
type GetPRsParams struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	First  int    `json:"first"`
	Search string `json:"search,omitempty"`
}

// UpdatePRTitleArgs renames a pull request.
type UpdatePRTitleArgs struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	PRID  string `json:"prId"`
	Title string `json:"title"`
}

// RepoKey returns "repo/<owner>/<id>".
func RepoKey(owner, id string) string {
	return repoKeyPrefix + owner + "/" + id
}

// PRKey returns "pr/<owner>/<name>/<id>".
func PRKey(owner, name, id string) string {
	return pullRequestKeyPrefix + owner + "/" + name + "/" + id
}

// version turns an RFC 3339 timestamp into Unix milliseconds.
func version(updatedAt string) (int64, error) {
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
