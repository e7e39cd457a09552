package github

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Domain holds the GitHub handlers.
type Domain struct {
	client adapter.GitHubAdapter
}

// New returns the GitHub domain calling the API through client.
func New(client adapter.GitHubAdapter) *Domain {
	return &Domain{client: client}
}

// Register adds the GitHub queries and mutations to cfg.
func (d *Domain) Register(cfg *registry.Config) {
	if cfg.Queries == nil {
		cfg.Queries = make(map[string]registry.Query)
	}
	if cfg.Mutations == nil {
		cfg.Mutations = make(map[string]registry.Mutation)
	}

	cfg.Queries[QueryGetRepos] = registry.NewQuery(localRepos, d.remoteRepos)
	cfg.Queries[QueryGetPRs] = registry.NewQuery(localPRs, d.remotePRs)
	cfg.Mutations[MutationUpdatePRTitle] = registry.NewMutation(localUpdatePRTitle, d.remoteUpdatePRTitle)
}

// searchReposString builds the GitHub search string of a repository query.
func searchReposString(p GetReposParams) string {
	var b strings.Builder
	b.WriteString("user:" + p.Owner)
	if p.Search != "" {
		b.WriteString(" " + p.Search + " in:name,description")
	}
	switch p.Privacy {
	case PrivacyPublic:
		b.WriteString(" is:public")
	case PrivacyPrivate:
		b.WriteString(" is:private")
	}
	b.WriteString(" sort:updated-desc")
	return b.String()
}

// searchPRsString builds the GitHub search string of a pull request query.
func searchPRsString(p GetPRsParams) string {
	var b strings.Builder
	b.WriteString("repo:" + p.Owner + "/" + p.Name + " type:pr")
	if p.Search != "" {
		b.WriteString(" " + p.Search + " in:title")
	}
	b.WriteString(" sort:updated-desc")
	return b.String()
}

func (d *Domain) remoteRepos(ctx context.Context, _ store.Tx, p GetReposParams) ([]models.Entry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var result searchResult[repoNode]
	err := d.client.Query(ctx, searchReposQuery, map[string]any{
		"query": searchReposString(p),
		"first": first(p.First),
	}, &result)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(result.Search.Nodes))
	for _, node := range result.Search.Nodes {
		if node == nil || node.Typename != "Repository" {
			continue
		}

		v, err := version(node.UpdatedAt)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "github.remoteRepos").
				Str("repo_id", node.ID).
				Msg("skipping repository with invalid updatedAt")
			continue
		}

		entry, err := models.NewEntry(RepoKey(p.Owner, node.ID), v, Repo{
			ID:          node.ID,
			Name:        node.Name,
			Owner:       node.Owner.Login,
			Description: node.Description,
			IsPrivate:   node.IsPrivate,
			UpdatedAt:   node.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (d *Domain) remotePRs(ctx context.Context, _ store.Tx, p GetPRsParams) ([]models.Entry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var result searchResult[prNode]
	err := d.client.Query(ctx, searchPRsQuery, map[string]any{
		"query": searchPRsString(p),
		"first": first(p.First),
	}, &result)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(result.Search.Nodes))
	for _, node := range result.Search.Nodes {
		if node == nil || node.Typename != "PullRequest" {
			continue
		}

		v, err := version(node.UpdatedAt)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "github.remotePRs").
				Str("pr_id", node.ID).
				Msg("skipping pull request with invalid updatedAt")
			continue
		}

		entry, err := models.NewEntry(PRKey(p.Owner, p.Name, node.ID), v, PR{
			ID:        node.ID,
			Title:     node.Title,
			Number:    node.Number,
			UpdatedAt: node.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (d *Domain) remoteUpdatePRTitle(ctx context.Context, _ store.Tx, args UpdatePRTitleArgs) error {
	if err := args.validate(); err != nil {
		return err
	}

	return d.client.Query(ctx, updatePRTitleMutation, map[string]any{
		"prId":  args.PRID,
		"title": args.Title,
	}, nil)
}

func localRepos(_ context.Context, r replica.Reader, p GetReposParams) ([]Repo, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	search := fold.String(p.Search)

	repos := make([]Repo, 0)
	for _, kv := range r.Scan(repoKeyPrefix + p.Owner + "/") {
		var repo Repo
		if err := json.Unmarshal(kv.Value, &repo); err != nil {
			return nil, fmt.Errorf("error decoding %q: %w", kv.Key, err)
		}

		if p.Privacy == PrivacyPublic && repo.IsPrivate || p.Privacy == PrivacyPrivate && !repo.IsPrivate {
			continue
		}
		if search != "" && !strings.Contains(fold.String(repo.Name), search) &&
			(repo.Description == nil || !strings.Contains(fold.String(*repo.Description), search)) {
			continue
		}

		repos = append(repos, repo)
	}

	slices.SortStableFunc(repos, func(a, b Repo) int {
		return newestFirst(a.UpdatedAt, b.UpdatedAt)
	})

	return repos, nil
}

func localPRs(_ context.Context, r replica.Reader, p GetPRsParams) ([]PR, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	search := fold.String(p.Search)

	prs := make([]PR, 0)
	for _, kv := range r.Scan(pullRequestKeyPrefix + p.Owner + "/" + p.Name + "/") {
		var pr PR
		if err := json.Unmarshal(kv.Value, &pr); err != nil {
			return nil, fmt.Errorf("error decoding %q: %w", kv.Key, err)
		}

		if search != "" && !strings.Contains(fold.String(pr.Title), search) {
			continue
		}

		prs = append(prs, pr)
	}

	slices.SortStableFunc(prs, func(a, b PR) int {
		return newestFirst(a.UpdatedAt, b.UpdatedAt)
	})

	return prs, nil
}

func localUpdatePRTitle(_ context.Context, w replica.Writer, args UpdatePRTitleArgs) error {
	if err := args.validate(); err != nil {
		return err
	}

	key := PRKey(args.Owner, args.Name, args.PRID)
	raw, ok := w.Get(key)
	if !ok {
		return nil
	}

	var pr PR
	if err := json.Unmarshal(raw, &pr); err != nil {
		return fmt.Errorf("error decoding %q: %w", key, err)
	}
	pr.Title = args.Title

	return w.Put(key, pr)
}

// newestFirst orders RFC 3339 timestamps descending. Unparsable values
// sort last.
func newestFirst(a, b string) int {
	va, errA := version(a)
	vb, errB := version(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return cmp.Compare(vb, va)
}

func first(n int) int {
	if n == 0 {
		return defaultFirst
	}
	return n
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", registry.ErrInvalidParams, err)
}

func validFirst(n int) bool {
	return n >= 0 && n <= maxFirst
}

func (p GetReposParams) validate() error {
	switch {
	case p.Owner == "":
		return invalid(ErrEmptyOwner)
	case !validFirst(p.First):
		return invalid(ErrInvalidFirst)
	case p.Privacy != "" && p.Privacy != PrivacyPublic && p.Privacy != PrivacyPrivate:
		return invalid(ErrBadPrivacy)
	}
	return nil
}

func (p GetPRsParams) validate() error {
	switch {
	case p.Owner == "":
		return invalid(ErrEmptyOwner)
	case p.Name == "":
		return invalid(ErrEmptyName)
	case !validFirst(p.First):
		return invalid(ErrInvalidFirst)
	}
	return nil
}

func (a UpdatePRTitleArgs) validate() error {
	switch {
	case a.Owner == "":
		return invalid(ErrEmptyOwner)
	case a.Name == "":
		return invalid(ErrEmptyName)
	case a.PRID == "":
		return invalid(ErrEmptyPRID)
	case a.Title == "":
		return invalid(ErrEmptyTitle)
	}
	return nil
}
