// Package usecase contains the business logic of the application: pure
// functions that turn fetched repository data into report values.
package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/acuervo/repolens/internal/domain"
)

// RankContributors builds the contributor ranking report. The input order
// is preserved: the GitHub API already returns contributors sorted by
// descending contribution count.
func RankContributors(contributors []domain.Contributor) domain.ContributorReport {
	report := domain.ContributorReport{
		Total:  len(contributors),
		Ranked: contributors,
	}
	if len(contributors) == 0 {
		return report
	}

	report.Found = true
	report.Top = contributors[0]

	var sum int
	for _, c := range contributors {
		sum += c.Contributions
	}
	if sum > 0 {
		report.TopShare = float64(report.Top.Contributions) / float64(sum) * 100
	}
	return report
}

// AnalyzeVelocity computes commit cadence over the fetched window.
// Commits without a timestamp are skipped individually.
func AnalyzeVelocity(commits []domain.Commit) domain.VelocityReport {
	report := domain.VelocityReport{TotalCommits: len(commits)}

	var times []time.Time
	authors := make(map[string]struct{})
	for _, c := range commits {
		if c.Timestamp.IsZero() {
			continue
		}
		times = append(times, c.Timestamp)
		if c.Author != "" {
			authors[c.Author] = struct{}{}
		}
	}
	report.Parsed = len(times)
	if len(times) == 0 {
		return report
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	report.Processed = true
	report.FirstCommit = times[0]
	report.LastCommit = times[len(times)-1]
	report.ElapsedDays = int(times[len(times)-1].Sub(times[0]).Hours() / 24)
	report.ActiveAuthors = len(authors)

	if report.ElapsedDays > 0 {
		report.RateKnown = true
		report.PerDay = float64(len(commits)) / float64(report.ElapsedDays)
		report.PerWeek = report.PerDay * 7
	}

	if len(times) >= 2 {
		gaps := make([]float64, 0, len(times)-1)
		for i := 1; i < len(times); i++ {
			gaps = append(gaps, times[i].Sub(times[i-1]).Hours())
		}
		mean, errMean := stats.Mean(gaps)
		median, errMedian := stats.Median(gaps)
		if errMean == nil && errMedian == nil {
			report.GapKnown = true
			report.MeanGapHours = mean
			report.MedianGapHours = median
		}
	}
	return report
}

// AnalyzeComplexity groups blob entries by top-level directory and ranks
// the groups by file count. File count is the complexity proxy on purpose;
// the tree fetch carries no line or churn information.
func AnalyzeComplexity(tree []domain.TreeEntry) domain.ComplexityReport {
	type bucket struct {
		files      int
		totalBytes int64
		extensions map[string]int
	}
	buckets := make(map[string]*bucket)

	var total int
	for _, entry := range tree {
		if !entry.IsFile() {
			continue
		}
		total++

		dir := domain.RootDir
		if i := strings.Index(entry.Path, "/"); i >= 0 {
			dir = entry.Path[:i]
		}
		b, ok := buckets[dir]
		if !ok {
			b = &bucket{extensions: make(map[string]int)}
			buckets[dir] = b
		}
		b.files++
		b.totalBytes += entry.Size
		b.extensions[extensionOf(entry.Path)]++
	}

	groups := make([]domain.DirGroup, 0, len(buckets))
	for name, b := range buckets {
		groups = append(groups, domain.DirGroup{
			Name:       name,
			Files:      b.files,
			TotalBytes: b.totalBytes,
			Extensions: sortExtensions(b.extensions),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Files != groups[j].Files {
			return groups[i].Files > groups[j].Files
		}
		return groups[i].Name < groups[j].Name
	})

	return domain.ComplexityReport{TotalFiles: total, Groups: groups}
}

func extensionOf(path string) string {
	base := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.LastIndex(base, "."); i >= 0 && i < len(base)-1 {
		return base[i+1:]
	}
	return "no extension"
}

func sortExtensions(counts map[string]int) []domain.ExtensionCount {
	out := make([]domain.ExtensionCount, 0, len(counts))
	for ext, n := range counts {
		out = append(out, domain.ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Extension < out[j].Extension
	})
	return out
}

// docFilter is the broad match deciding whether a path counts as
// documentation at all.
var docFilter = []string{
	"readme", "contributing", "license", "changelog", "docs/",
	"documentation", "guide", "tutorial", "api",
}

const maxDocExamples = 3

// AnalyzeDocumentation classifies documentation files and derives the 0-6
// completeness score.
func AnalyzeDocumentation(tree []domain.TreeEntry) domain.DocReport {
	order := []string{
		domain.DocReadme, domain.DocContributing, domain.DocLicense,
		domain.DocChangelog, domain.DocTechnical, domain.DocOther,
	}
	counts := make(map[string]int)
	examples := make(map[string][]domain.TreeEntry)

	var total int
	for _, entry := range tree {
		if !entry.IsFile() {
			continue
		}
		lower := strings.ToLower(entry.Path)
		if !isDocPath(lower) {
			continue
		}
		total++

		category := classifyDoc(lower)
		counts[category]++
		if len(examples[category]) < maxDocExamples {
			examples[category] = append(examples[category], entry)
		}
	}

	report := domain.DocReport{TotalDocs: total}
	for _, name := range order {
		report.Categories = append(report.Categories, domain.DocCategory{
			Name:     name,
			Count:    counts[name],
			Examples: examples[name],
		})
	}

	if counts[domain.DocReadme] > 0 {
		report.Score += 2
	}
	if counts[domain.DocContributing] > 0 {
		report.Score++
	}
	if counts[domain.DocLicense] > 0 {
		report.Score++
	}
	switch technical := counts[domain.DocTechnical]; {
	case technical > 3:
		report.Score += 2
	case technical > 0:
		report.Score++
	}
	return report
}

func isDocPath(lower string) bool {
	for _, keyword := range docFilter {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return strings.HasSuffix(lower, ".md")
}

// classifyDoc assigns one category by first matching keyword. The priority
// order mirrors the score weights: a path like docs/readme.md counts as a
// README, not as a technical doc.
func classifyDoc(lower string) string {
	switch {
	case strings.Contains(lower, "readme"):
		return domain.DocReadme
	case strings.Contains(lower, "contributing") || strings.Contains(lower, "contribute"):
		return domain.DocContributing
	case strings.Contains(lower, "license"):
		return domain.DocLicense
	case strings.Contains(lower, "changelog") || strings.Contains(lower, "history"):
		return domain.DocChangelog
	case strings.Contains(lower, "docs/") || strings.Contains(lower, "api") || strings.Contains(lower, "guide"):
		return domain.DocTechnical
	default:
		return domain.DocOther
	}
}

// Summarize assembles the executive summary from already-fetched fields.
func Summarize(data *domain.RepoData) domain.SummaryReport {
	report := domain.SummaryReport{
		Repo:             data.Repo,
		SizeMB:           float64(data.Repo.SizeKB) / 1024,
		ContributorCount: len(data.Contributors),
		RecentCommits:    len(data.Commits),
		IssuesFetched:    len(data.Issues),
	}
	for i, c := range data.Contributors {
		if i == 3 {
			break
		}
		report.TopContributors = append(report.TopContributors, c.Login)
	}
	report.Languages = languageShares(data.Languages, 5)
	return report
}

func languageShares(languages map[string]int, limit int) []domain.LanguageShare {
	var total int
	for _, b := range languages {
		total += b
	}

	shares := make([]domain.LanguageShare, 0, len(languages))
	for name, b := range languages {
		share := domain.LanguageShare{Name: name, Bytes: b}
		if total > 0 {
			share.Percent = float64(b) / float64(total) * 100
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})
	if limit > 0 && len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}
