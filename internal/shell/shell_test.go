package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuervo/repolens/internal/chat"
	"github.com/acuervo/repolens/internal/domain"
)

// stubFetcher records fetch calls and serves canned data per owner/repo.
type stubFetcher struct {
	calls []string
	data  map[string]*domain.RepoData
	errs  map[string]error
}

func (f *stubFetcher) FetchRepository(_ context.Context, owner, repo string) (*domain.RepoData, error) {
	key := owner + "/" + repo
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if data, ok := f.data[key]; ok {
		return data, nil
	}
	return &domain.RepoData{Repo: domain.Snapshot{FullName: key}}, nil
}

func testRepoData() *domain.RepoData {
	return &domain.RepoData{
		Repo: domain.Snapshot{Name: "spoon", FullName: "octo/spoon", Stars: 42},
		Contributors: []domain.Contributor{
			{Login: "a", Contributions: 80},
			{Login: "b", Contributions: 20},
		},
		Commits: []domain.Commit{
			{Author: "a", Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{Author: "b", Timestamp: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		},
		Tree: []domain.TreeEntry{
			{Path: "src/x.py", Type: "blob", Size: 100},
			{Path: "README.md", Type: "blob", Size: 50},
		},
		Languages: map[string]int{"Python": 100},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func runSession(t *testing.T, fetcher *stubFetcher, agent *chat.Agent, script string) string {
	t.Helper()
	var out bytes.Buffer
	session := New(fetcher, agent, quietLogger(), strings.NewReader(script), &out)
	require.NoError(t, session.Run(context.Background()))
	return out.String()
}

func TestRunDispatchesReports(t *testing.T) {
	fetcher := &stubFetcher{data: map[string]*domain.RepoData{"octo/spoon": testRepoData()}}

	out := runSession(t, fetcher, nil, "octo\nspoon\n1\n2\n5\n0\n")

	assert.Equal(t, []string{"octo/spoon"}, fetcher.calls)
	assert.Contains(t, out, "TOP CONTRIBUTOR")
	assert.Contains(t, out, "Leader: a")
	assert.Contains(t, out, "DEVELOPMENT VELOCITY")
	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "Goodbye!")
}

func TestRunDefaultsToExamplePair(t *testing.T) {
	fetcher := &stubFetcher{}

	runSession(t, fetcher, nil, "\n\n0\n")

	assert.Equal(t, []string{DefaultOwner + "/" + DefaultRepo}, fetcher.calls)
}

func TestRunFetchFailureReturnsToPrompt(t *testing.T) {
	fetcher := &stubFetcher{
		data: map[string]*domain.RepoData{"octo/spoon": testRepoData()},
		errs: map[string]error{"octo/missing": errors.New("not found")},
	}

	out := runSession(t, fetcher, nil, "octo\nmissing\nocto\nspoon\n0\n")

	assert.Equal(t, []string{"octo/missing", "octo/spoon"}, fetcher.calls)
	assert.Contains(t, out, "Could not retrieve data for octo/missing")
}

func TestRunSwitchRepository(t *testing.T) {
	fetcher := &stubFetcher{}

	out := runSession(t, fetcher, nil, "octo\nspoon\n7\nocto\nfork\n0\n")

	assert.Equal(t, []string{"octo/spoon", "octo/fork"}, fetcher.calls)
	assert.Contains(t, out, "Goodbye!")
}

func TestRunInvalidChoice(t *testing.T) {
	fetcher := &stubFetcher{}

	out := runSession(t, fetcher, nil, "octo\nspoon\n9\n0\n")

	assert.Contains(t, out, "Invalid option")
}

func TestRunFullAnalysis(t *testing.T) {
	fetcher := &stubFetcher{data: map[string]*domain.RepoData{"octo/spoon": testRepoData()}}

	out := runSession(t, fetcher, nil, "octo\nspoon\n6\n0\n")

	assert.Contains(t, out, "FULL ANALYSIS: octo/spoon")
	assert.Contains(t, out, "Analysis complete")
}

func TestRunChatOptionHiddenWithoutAgent(t *testing.T) {
	fetcher := &stubFetcher{}

	out := runSession(t, fetcher, nil, "octo\nspoon\n8\n0\n")

	assert.NotContains(t, out, "Ask a question")
	assert.Contains(t, out, "Invalid option")
}

func TestRunChatTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "test-model",
			"content": [{"type": "text", "text": "mostly a"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer server.Close()

	agent, err := chat.New("test-key", "test-model",
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)

	fetcher := &stubFetcher{data: map[string]*domain.RepoData{"octo/spoon": testRepoData()}}

	out := runSession(t, fetcher, agent, "octo\nspoon\n8\nwho contributes most?\n0\n")

	assert.Contains(t, out, "Ask a question")
	assert.Contains(t, out, "ANSWER:")
	assert.Contains(t, out, "mostly a")
	assert.Equal(t, 2, agent.Turns())
}
