// Package presenter renders report values as console text. It writes plain
// text to an injected writer; interactive styling stays in the shell.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/acuervo/repolens/internal/domain"
)

const ruleWidth = 60

// Presenter formats reports onto a single output writer.
type Presenter struct {
	out io.Writer
}

// New creates a Presenter writing to out.
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) rule() {
	fmt.Fprintln(p.out, strings.Repeat("=", ruleWidth))
}

func (p *Presenter) header(title string) {
	fmt.Fprintln(p.out, title)
	p.rule()
}

// Contributors renders the contributor ranking report.
func (p *Presenter) Contributors(r domain.ContributorReport) {
	p.header("TOP CONTRIBUTOR")

	if !r.Found {
		fmt.Fprintln(p.out, "No contributors found")
		p.rule()
		return
	}

	fmt.Fprintf(p.out, "\nTop 10 contributors (of %d total):\n\n", r.Total)
	for i, c := range r.Ranked {
		if i == 10 {
			break
		}
		fmt.Fprintf(p.out, "%2d. %-20s - %5d contributions\n", i+1, c.Login, c.Contributions)
	}

	fmt.Fprintf(p.out, "\nLeader: %s\n", r.Top.Login)
	fmt.Fprintf(p.out, "   - Contributions: %d\n", r.Top.Contributions)
	fmt.Fprintf(p.out, "   - Share of total: %.1f%%\n", r.TopShare)
	fmt.Fprintf(p.out, "   - Profile: https://github.com/%s\n", r.Top.Login)
	p.rule()
	fmt.Fprintln(p.out)
}

// Velocity renders the development velocity report.
func (p *Presenter) Velocity(r domain.VelocityReport, repo domain.Snapshot) {
	p.header("DEVELOPMENT VELOCITY")

	if r.TotalCommits == 0 {
		fmt.Fprintln(p.out, "No commits found")
		p.rule()
		return
	}
	if !r.Processed {
		fmt.Fprintln(p.out, "Could not process commit dates")
		p.rule()
		return
	}

	fmt.Fprintln(p.out, "\nObserved window:")
	fmt.Fprintf(p.out, "   - First commit: %s\n", r.FirstCommit.Format("2006-01-02 15:04"))
	fmt.Fprintf(p.out, "   - Last commit:  %s\n", r.LastCommit.Format("2006-01-02 15:04"))
	fmt.Fprintf(p.out, "   - Elapsed days: %d\n", r.ElapsedDays)

	fmt.Fprintln(p.out, "\nMetrics:")
	fmt.Fprintf(p.out, "   - Commits in window (up to 100): %d\n", r.TotalCommits)
	if r.RateKnown {
		fmt.Fprintf(p.out, "   - Commits per day:  %.2f\n", r.PerDay)
		fmt.Fprintf(p.out, "   - Commits per week: %.1f\n", r.PerWeek)
	} else {
		fmt.Fprintln(p.out, "   - Commits per day:  N/A")
		fmt.Fprintln(p.out, "   - Commits per week: N/A")
	}
	fmt.Fprintf(p.out, "   - Active authors: %d\n", r.ActiveAuthors)
	if r.GapKnown {
		fmt.Fprintf(p.out, "   - Mean gap between commits:   %.1f h\n", r.MeanGapHours)
		fmt.Fprintf(p.out, "   - Median gap between commits: %.1f h\n", r.MedianGapHours)
	}

	fmt.Fprintln(p.out, "\nRepository state:")
	fmt.Fprintf(p.out, "   - Stars: %d\n", repo.Stars)
	fmt.Fprintf(p.out, "   - Forks: %d\n", repo.Forks)
	fmt.Fprintf(p.out, "   - Watchers: %d\n", repo.Watchers)
	fmt.Fprintf(p.out, "   - Open issues: %d\n", repo.OpenIssues)
	p.rule()
	fmt.Fprintln(p.out)
}

// Complexity renders the directory complexity report.
func (p *Presenter) Complexity(r domain.ComplexityReport) {
	p.header("MOST COMPLEX CODE AREA")

	if r.TotalFiles == 0 {
		fmt.Fprintln(p.out, "Could not retrieve the file tree")
		p.rule()
		return
	}

	fmt.Fprintln(p.out, "\nTop 10 directories by file count:")
	fmt.Fprintln(p.out)
	for i, g := range r.Groups {
		if i == 10 {
			break
		}
		sizeMB := float64(g.TotalBytes) / (1024 * 1024)
		fmt.Fprintf(p.out, "%2d. %-30s - %4d files, %.2f MB\n", i+1, g.Name, g.Files, sizeMB)
	}

	if most, ok := r.MostComplex(); ok {
		fmt.Fprintf(p.out, "\nMost complex area (by file count): %s\n", most.Name)
		fmt.Fprintf(p.out, "   - Files: %d\n", most.Files)
		fmt.Fprintf(p.out, "   - Total size: %.2f MB\n", float64(most.TotalBytes)/(1024*1024))
		fmt.Fprintln(p.out, "   - File types:")
		for i, ext := range most.Extensions {
			if i == 5 {
				break
			}
			fmt.Fprintf(p.out, "     - .%s: %d files\n", ext.Extension, ext.Count)
		}
	}
	p.rule()
	fmt.Fprintln(p.out)
}

// Documentation renders the documentation coverage report.
func (p *Presenter) Documentation(r domain.DocReport, repo domain.Snapshot) {
	p.header("DOCUMENTATION STATUS")

	fmt.Fprintf(p.out, "\nDocumentation files found: %d\n\n", r.TotalDocs)

	for _, category := range r.Categories {
		if category.Count == 0 {
			continue
		}
		fmt.Fprintf(p.out, "%s: %d file(s)\n", category.Name, category.Count)
		for _, example := range category.Examples {
			fmt.Fprintf(p.out, "   - %s (%.1f KB)\n", example.Path, float64(example.Size)/1024)
		}
		if rest := category.Count - len(category.Examples); rest > 0 {
			fmt.Fprintf(p.out, "   ... and %d more\n", rest)
		}
	}

	fmt.Fprintln(p.out, "\nAssessment:")
	p.assessDoc(r, domain.DocReadme, "has a README", "no README")
	p.assessDoc(r, domain.DocContributing, "has a contribution guide", "no contribution guide")
	p.assessDoc(r, domain.DocLicense, "has a license", "no license file")
	if technical, ok := r.Category(domain.DocTechnical); ok {
		switch {
		case technical.Count > 3:
			fmt.Fprintln(p.out, "   [x] good technical documentation")
		case technical.Count > 0:
			fmt.Fprintln(p.out, "   [~] limited technical documentation")
		default:
			fmt.Fprintln(p.out, "   [ ] no technical documentation")
		}
	}

	fmt.Fprintf(p.out, "\nDocumentation score: %d/6\n", r.Score)
	if repo.Description != "" {
		fmt.Fprintf(p.out, "\nRepository description: %s\n", repo.Description)
	}
	p.rule()
	fmt.Fprintln(p.out)
}

func (p *Presenter) assessDoc(r domain.DocReport, name, present, missing string) {
	if category, ok := r.Category(name); ok && category.Count > 0 {
		fmt.Fprintf(p.out, "   [x] %s\n", present)
		return
	}
	fmt.Fprintf(p.out, "   [ ] %s\n", missing)
}

// Summary renders the executive summary.
func (p *Presenter) Summary(r domain.SummaryReport) {
	p.header("EXECUTIVE SUMMARY")

	fmt.Fprintf(p.out, "\nName: %s\n", r.Repo.FullName)
	if r.Repo.Description != "" {
		fmt.Fprintf(p.out, "Description: %s\n", r.Repo.Description)
	}

	fmt.Fprintln(p.out, "\nKey metrics:")
	fmt.Fprintf(p.out, "   - Stars: %d\n", r.Repo.Stars)
	fmt.Fprintf(p.out, "   - Forks: %d\n", r.Repo.Forks)
	fmt.Fprintf(p.out, "   - Watchers: %d\n", r.Repo.Watchers)
	fmt.Fprintf(p.out, "   - Open issues: %d\n", r.Repo.OpenIssues)
	fmt.Fprintf(p.out, "   - Size: %.1f MB\n", r.SizeMB)

	fmt.Fprintln(p.out, "\nCommunity:")
	fmt.Fprintf(p.out, "   - Contributors: %d\n", r.ContributorCount)
	if len(r.TopContributors) > 0 {
		fmt.Fprintf(p.out, "   - Top 3: %s\n", strings.Join(r.TopContributors, ", "))
	}

	if len(r.Languages) > 0 {
		fmt.Fprintln(p.out, "\nTechnologies:")
		for _, lang := range r.Languages {
			fmt.Fprintf(p.out, "   - %s: %.1f%%\n", lang.Name, lang.Percent)
		}
	}

	fmt.Fprintln(p.out, "\nActivity:")
	if !r.Repo.CreatedAt.IsZero() {
		fmt.Fprintf(p.out, "   - Created: %s\n", r.Repo.CreatedAt.Format("2006-01-02"))
	}
	if !r.Repo.UpdatedAt.IsZero() {
		fmt.Fprintf(p.out, "   - Last updated: %s\n", r.Repo.UpdatedAt.Format("2006-01-02"))
	}
	if r.RecentCommits > 0 {
		fmt.Fprintf(p.out, "   - Recent commits analyzed: %d\n", r.RecentCommits)
	}
	if r.IssuesFetched > 0 {
		fmt.Fprintf(p.out, "   - Issues and PRs fetched: %d\n", r.IssuesFetched)
	}

	fmt.Fprintln(p.out, "\nLinks:")
	fmt.Fprintf(p.out, "   - Repo: %s\n", valueOr(r.Repo.HTMLURL, "N/A"))
	if r.Repo.Homepage != "" {
		fmt.Fprintf(p.out, "   - Web: %s\n", r.Repo.Homepage)
	}
	p.rule()
	fmt.Fprintln(p.out)
}

// FullAnalysis renders every report, in the order of the complete analysis.
func (p *Presenter) FullAnalysis(data *domain.RepoData,
	summary domain.SummaryReport,
	contributors domain.ContributorReport,
	velocity domain.VelocityReport,
	complexity domain.ComplexityReport,
	docs domain.DocReport,
) {
	p.Summary(summary)
	p.Contributors(contributors)
	p.Velocity(velocity, data.Repo)
	p.Complexity(complexity)
	p.Documentation(docs, data.Repo)
	fmt.Fprintln(p.out, "Analysis complete")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
