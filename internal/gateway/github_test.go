package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return newWithClient(restClient, logger, io.Discard), server
}

// happyPathHandler serves all six endpoints with minimal valid payloads.
func happyPathHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/spoon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "spoon",
			"full_name": "octo/spoon",
			"description": "a demo repository",
			"language": "Go",
			"stargazers_count": 42,
			"forks_count": 7,
			"watchers_count": 42,
			"open_issues_count": 3,
			"size": 2048,
			"created_at": "2020-01-02T03:04:05Z",
			"updated_at": "2024-05-06T07:08:09Z",
			"homepage": "https://spoon.example",
			"html_url": "https://github.com/octo/spoon",
			"default_branch": "trunk"
		}`)
	})
	mux.HandleFunc("/repos/octo/spoon/contributors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"login": "a", "contributions": 80}, {"login": "b", "contributions": 20}]`)
	})
	mux.HandleFunc("/repos/octo/spoon/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"commit": {"author": {"name": "Alice", "date": "2024-03-01T10:00:00Z"}}},
			{"commit": {"author": {"name": "Bob"}}}
		]`)
	})
	mux.HandleFunc("/repos/octo/spoon/git/trees/trunk", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{"sha": "abc", "tree": [
			{"path": "src/x.py", "type": "blob", "size": 100},
			{"path": "src", "type": "tree"},
			{"path": "README.md", "type": "blob", "size": 50}
		]}`)
	})
	mux.HandleFunc("/repos/octo/spoon/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		fmt.Fprint(w, `[{"number": 1, "title": "bug", "state": "open"}]`)
	})
	mux.HandleFunc("/repos/octo/spoon/languages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Go": 7500, "Python": 2500}`)
	})
	return mux
}

func TestGitHubGateway_FetchRepository(t *testing.T) {
	gateway, server := setupTestGateway(t, happyPathHandler(t))
	defer server.Close()

	data, err := gateway.FetchRepository(context.Background(), "octo", "spoon")
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, "spoon", data.Repo.Name)
	assert.Equal(t, "octo/spoon", data.Repo.FullName)
	assert.Equal(t, 42, data.Repo.Stars)
	assert.Equal(t, "trunk", data.Repo.DefaultBranch)

	require.Len(t, data.Contributors, 2)
	assert.Equal(t, "a", data.Contributors[0].Login)
	assert.Equal(t, 80, data.Contributors[0].Contributions)

	require.Len(t, data.Commits, 2)
	assert.Equal(t, "Alice", data.Commits[0].Author)
	assert.False(t, data.Commits[0].Timestamp.IsZero())
	// Missing dates arrive as the zero time and are skipped downstream.
	assert.True(t, data.Commits[1].Timestamp.IsZero())

	require.Len(t, data.Tree, 3)
	assert.Equal(t, "src/x.py", data.Tree[0].Path)
	assert.Equal(t, int64(100), data.Tree[0].Size)

	require.Len(t, data.Issues, 1)
	assert.Equal(t, "bug", data.Issues[0].Title)

	assert.Equal(t, map[string]int{"Go": 7500, "Python": 2500}, data.Languages)
}

func TestGitHubGateway_RepoInfoFailureAborts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	gateway, server := setupTestGateway(t, handler)
	defer server.Close()

	data, err := gateway.FetchRepository(context.Background(), "octo", "missing")

	assert.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "failed to fetch repository info")
}

func TestGitHubGateway_EndpointFailuresDegradeToEmpty(t *testing.T) {
	// Only the repository-info endpoint answers; every other call fails.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/spoon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "spoon", "full_name": "octo/spoon", "default_branch": "main"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "boom"}`)
	})
	gateway, server := setupTestGateway(t, mux)
	defer server.Close()

	data, err := gateway.FetchRepository(context.Background(), "octo", "spoon")
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, "spoon", data.Repo.Name)
	assert.Empty(t, data.Contributors)
	assert.Empty(t, data.Commits)
	assert.Empty(t, data.Tree)
	assert.Empty(t, data.Issues)
	assert.Empty(t, data.Languages)
}
