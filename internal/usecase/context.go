package usecase

import (
	"fmt"
	"strings"

	"github.com/acuervo/repolens/internal/domain"
)

// BuildContext renders the aggregated repository data as a markdown-ish
// text block. The chat agent reuses it verbatim as grounding inside the
// system prompt, so it has to stand on its own without the console reports.
func BuildContext(owner, repo string, data *domain.RepoData) string {
	if data == nil {
		return fmt.Sprintf("Repository: %s/%s\n(limited information available)", owner, repo)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Repository analysis: %s/%s\n\n", owner, repo)

	fmt.Fprintf(&b, "## General information\n")
	fmt.Fprintf(&b, "- Name: %s\n", valueOr(data.Repo.Name, "N/A"))
	fmt.Fprintf(&b, "- Description: %s\n", valueOr(data.Repo.Description, "N/A"))
	fmt.Fprintf(&b, "- Primary language: %s\n", valueOr(data.Repo.Language, "N/A"))
	fmt.Fprintf(&b, "- Stars: %d\n", data.Repo.Stars)
	fmt.Fprintf(&b, "- Forks: %d\n", data.Repo.Forks)
	fmt.Fprintf(&b, "- Open issues: %d\n", data.Repo.OpenIssues)
	fmt.Fprintf(&b, "- Size: %d KB\n", data.Repo.SizeKB)
	if !data.Repo.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- Created: %s\n", data.Repo.CreatedAt.Format("2006-01-02"))
	}
	if !data.Repo.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "- Last updated: %s\n", data.Repo.UpdatedAt.Format("2006-01-02"))
	}

	fmt.Fprintf(&b, "\n## Top contributors (by commit count)\n")
	ranking := RankContributors(data.Contributors)
	for i, c := range ranking.Ranked {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %d contributions\n", i+1, c.Login, c.Contributions)
	}
	if !ranking.Found {
		fmt.Fprintf(&b, "(no contributor data)\n")
	}

	fmt.Fprintf(&b, "\n## Recent activity (%d commits analyzed)\n", len(data.Commits))
	velocity := AnalyzeVelocity(data.Commits)
	if velocity.Processed {
		fmt.Fprintf(&b, "- First commit in window: %s\n", velocity.FirstCommit.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "- Last commit: %s\n", velocity.LastCommit.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "- Active authors: %d\n", velocity.ActiveAuthors)
	}

	fmt.Fprintf(&b, "\n## Code structure (%d tree entries)\n", len(data.Tree))
	fmt.Fprintf(&b, "\nFile distribution by extension:\n")
	for i, ext := range fileExtensions(data.Tree) {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "- .%s: %d files\n", ext.Extension, ext.Count)
	}

	docs := AnalyzeDocumentation(data.Tree)
	if docs.TotalDocs > 0 {
		fmt.Fprintf(&b, "\n## Documentation found (%d files, score %d/6)\n", docs.TotalDocs, docs.Score)
		var listed int
		for _, category := range docs.Categories {
			for _, example := range category.Examples {
				if listed == 10 {
					break
				}
				fmt.Fprintf(&b, "- %s\n", example.Path)
				listed++
			}
		}
	}

	return b.String()
}

func fileExtensions(tree []domain.TreeEntry) []domain.ExtensionCount {
	counts := make(map[string]int)
	for _, entry := range tree {
		if entry.IsFile() {
			counts[extensionOf(entry.Path)]++
		}
	}
	return sortExtensions(counts)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
