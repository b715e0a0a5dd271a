package domain

import "time"

// ContributorReport ranks contributors by contribution count.
type ContributorReport struct {
	Found    bool
	Total    int           // number of contributors fetched
	Ranked   []Contributor // source order, descending contributions
	Top      Contributor
	TopShare float64 // percentage of the summed contributions, 0 when Total is 0
}

// VelocityReport summarizes commit cadence over the observed window.
type VelocityReport struct {
	TotalCommits   int
	Parsed         int // commits with a usable timestamp
	Processed      bool
	FirstCommit    time.Time
	LastCommit     time.Time
	ElapsedDays    int
	RateKnown      bool // false when ElapsedDays is 0; rates render as N/A
	PerDay         float64
	PerWeek        float64
	ActiveAuthors  int
	GapKnown       bool // at least two parsed commits
	MeanGapHours   float64
	MedianGapHours float64
}

// ExtensionCount is one file-extension frequency inside a directory group.
type ExtensionCount struct {
	Extension string
	Count     int
}

// DirGroup aggregates the blob entries under one top-level directory.
type DirGroup struct {
	Name       string
	Files      int
	TotalBytes int64
	Extensions []ExtensionCount // descending by count
}

// RootDir is the synthetic group for paths without a separator.
const RootDir = "(root)"

// ComplexityReport ranks top-level directories by file count.
type ComplexityReport struct {
	TotalFiles int
	Groups     []DirGroup // descending by file count; index 0 is the most complex
}

// MostComplex returns the highest-ranked group, if any.
func (r ComplexityReport) MostComplex() (DirGroup, bool) {
	if len(r.Groups) == 0 {
		return DirGroup{}, false
	}
	return r.Groups[0], true
}

// DocCategory groups documentation files of one kind.
type DocCategory struct {
	Name     string
	Count    int
	Examples []TreeEntry // up to 3 per category
}

// Documentation category names, in classification priority order.
const (
	DocReadme       = "README"
	DocContributing = "Contribution guides"
	DocLicense      = "Licenses"
	DocChangelog    = "Changelog"
	DocTechnical    = "API/technical docs"
	DocOther        = "Other"
)

// DocReport classifies documentation files and scores completeness 0-6.
type DocReport struct {
	TotalDocs  int
	Categories []DocCategory // fixed order: README, contributing, license, changelog, technical, other
	Score      int
}

// Category returns the category with the given name, if present.
func (r DocReport) Category(name string) (DocCategory, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return DocCategory{}, false
}

// LanguageShare is one language's byte share of the repository.
type LanguageShare struct {
	Name    string
	Bytes   int
	Percent float64
}

// SummaryReport is the executive summary over already-fetched fields.
type SummaryReport struct {
	Repo             Snapshot
	SizeMB           float64
	ContributorCount int
	TopContributors  []string // up to 3 logins
	Languages        []LanguageShare
	RecentCommits    int
	IssuesFetched    int
}
