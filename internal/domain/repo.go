// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Tree entry types as reported by the GitHub git/trees endpoint.
const (
	TreeEntryBlob = "blob"
	TreeEntryTree = "tree"
)

// Snapshot holds the repository metadata fetched once per session.
// It is read-only after the fetch.
type Snapshot struct {
	Name          string
	FullName      string
	Description   string
	Language      string
	Stars         int
	Forks         int
	Watchers      int
	OpenIssues    int
	SizeKB        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Homepage      string
	HTMLURL       string
	DefaultBranch string
}

// Contributor is a GitHub account credited with commits to the repository.
// Collections keep the API's order, which is descending by contributions.
type Contributor struct {
	Login         string
	Contributions int
}

// Commit is one commit record from the most recent page of commits.
// A zero Timestamp means the API response carried no usable date.
type Commit struct {
	Author    string
	Timestamp time.Time
}

// TreeEntry is one node of the recursive file tree. Only blob entries
// participate in aggregation.
type TreeEntry struct {
	Path string
	Type string
	Size int64
}

// IsFile reports whether the entry is a regular file.
func (e TreeEntry) IsFile() bool {
	return e.Type == TreeEntryBlob
}

// Issue is a repository issue or pull request. The reports only count them.
type Issue struct {
	Number int
	Title  string
	State  string
}

// RepoData bundles everything fetched for one repository. Collections may
// be empty when their endpoint failed; Repo is always populated because a
// failed repository-info fetch aborts the whole operation.
type RepoData struct {
	Repo         Snapshot
	Contributors []Contributor
	Commits      []Commit
	Tree         []TreeEntry
	Issues       []Issue
	Languages    map[string]int
}
