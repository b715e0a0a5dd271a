// Package gateway provides a gateway to the GitHub REST API. All conversion
// from API responses to domain records happens here, at the boundary.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/acuervo/repolens/internal/domain"
)

// perPage bounds every list call. Only the first page is ever requested;
// the reports are defined over this window.
const perPage = 100

// Fetcher defines the behavior of a gateway for fetching repository data.
type Fetcher interface {
	FetchRepository(ctx context.Context, owner, repo string) (*domain.RepoData, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
//
// Failure semantics: the repository-info call is the only fatal one. Every
// other endpoint degrades to an empty collection with a logged warning so
// a partial fetch still yields usable reports.
type GitHubGateway struct {
	client   *github.Client
	logger   *logrus.Logger
	progress io.Writer
}

// NewGitHubGateway builds a gateway around an HTTP client that waits out
// GitHub's secondary rate limits and, when a token is given, authenticates
// every request with it.
func NewGitHubGateway(token string, timeout time.Duration, logger *logrus.Logger, progress io.Writer) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}

	return &GitHubGateway{
		client:   github.NewClient(httpClient),
		logger:   logger,
		progress: progress,
	}, nil
}

// newWithClient wires a gateway to a prebuilt go-github client. Tests use
// it to point the gateway at an httptest server.
func newWithClient(client *github.Client, logger *logrus.Logger, progress io.Writer) *GitHubGateway {
	return &GitHubGateway{client: client, logger: logger, progress: progress}
}

// FetchRepository performs the full read-only fetch for one repository:
// metadata, contributors, commits, recursive tree, issues and languages,
// in that order, sequentially.
func (g *GitHubGateway) FetchRepository(ctx context.Context, owner, repo string) (*domain.RepoData, error) {
	fmt.Fprintf(g.progress, "Downloading data for %s/%s...\n", owner, repo)

	fmt.Fprintln(g.progress, "  ... repository info")
	repository, _, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository info for %s/%s: %w", owner, repo, err)
	}

	data := &domain.RepoData{Repo: snapshotFrom(repository)}

	fmt.Fprintln(g.progress, "  ... contributors")
	data.Contributors = g.fetchContributors(ctx, owner, repo)

	fmt.Fprintln(g.progress, "  ... recent commits")
	data.Commits = g.fetchCommits(ctx, owner, repo)

	fmt.Fprintln(g.progress, "  ... file tree")
	data.Tree = g.fetchTree(ctx, owner, repo, data.Repo.DefaultBranch)

	fmt.Fprintln(g.progress, "  ... issues and pull requests")
	data.Issues = g.fetchIssues(ctx, owner, repo)

	fmt.Fprintln(g.progress, "  ... languages")
	data.Languages = g.fetchLanguages(ctx, owner, repo)

	fmt.Fprintln(g.progress, "Download complete.")
	return data, nil
}

func (g *GitHubGateway) fetchContributors(ctx context.Context, owner, repo string) []domain.Contributor {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	contributors, _, err := g.client.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		g.logger.WithError(err).Warn("contributors unavailable, continuing without them")
		return []domain.Contributor{}
	}

	out := make([]domain.Contributor, 0, len(contributors))
	for _, c := range contributors {
		out = append(out, domain.Contributor{
			Login:         c.GetLogin(),
			Contributions: c.GetContributions(),
		})
	}
	return out
}

func (g *GitHubGateway) fetchCommits(ctx context.Context, owner, repo string) []domain.Commit {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	commits, _, err := g.client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		g.logger.WithError(err).Warn("commits unavailable, continuing without them")
		return []domain.Commit{}
	}

	out := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		author := c.GetCommit().GetAuthor()
		out = append(out, domain.Commit{
			Author:    author.GetName(),
			Timestamp: author.GetDate().Time,
		})
	}
	return out
}

func (g *GitHubGateway) fetchTree(ctx context.Context, owner, repo, branch string) []domain.TreeEntry {
	if branch == "" {
		branch = "main"
	}
	tree, _, err := g.client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		g.logger.WithError(err).Warn("file tree unavailable, continuing without it")
		return []domain.TreeEntry{}
	}

	out := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		out = append(out, domain.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: int64(e.GetSize()),
		})
	}
	return out
}

func (g *GitHubGateway) fetchIssues(ctx context.Context, owner, repo string) []domain.Issue {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	issues, _, err := g.client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		g.logger.WithError(err).Warn("issues unavailable, continuing without them")
		return []domain.Issue{}
	}

	out := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, domain.Issue{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			State:  issue.GetState(),
		})
	}
	return out
}

func (g *GitHubGateway) fetchLanguages(ctx context.Context, owner, repo string) map[string]int {
	languages, _, err := g.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		g.logger.WithError(err).Warn("languages unavailable, continuing without them")
		return map[string]int{}
	}
	return languages
}

func snapshotFrom(r *github.Repository) domain.Snapshot {
	return domain.Snapshot{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetWatchersCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		SizeKB:        r.GetSize(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		Homepage:      r.GetHomepage(),
		HTMLURL:       r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
	}
}
