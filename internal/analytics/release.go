package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// descriptionLimit truncates issue descriptions in release-note entries.
const descriptionLimit = 120

// BuildReleaseNotes partitions a resolved issue collection into the five
// release-note categories and renders both output representations. Every
// input issue lands in exactly one category; the label checks outrank the
// type checks so a "breaking" bug is reported as a breaking change.
func BuildReleaseNotes(version, releaseDate string, issues []Issue, stats ReleaseStats) ReleaseNotes {
	notes := ReleaseNotes{
		Version:         version,
		ReleaseDate:     releaseDate,
		Highlights:      []string{},
		Features:        []ReleaseEntry{},
		Improvements:    []ReleaseEntry{},
		BugFixes:        []ReleaseEntry{},
		BreakingChanges: []ReleaseEntry{},
		Deprecated:      []ReleaseEntry{},
		Stats:           stats,
	}
	notes.Stats.IssueCount = len(issues)

	contributors := make(map[string]bool)
	for _, issue := range issues {
		entry := toReleaseEntry(issue)
		switch categorize(issue) {
		case "breaking":
			notes.BreakingChanges = append(notes.BreakingChanges, entry)
		case "deprecated":
			notes.Deprecated = append(notes.Deprecated, entry)
		case "bugfix":
			notes.BugFixes = append(notes.BugFixes, entry)
		case "feature":
			notes.Features = append(notes.Features, entry)
		default:
			notes.Improvements = append(notes.Improvements, entry)
		}

		if issue.Assignee != "" {
			contributors[issue.Assignee] = true
		}
		if issue.Reporter != "" {
			contributors[issue.Reporter] = true
		}
	}

	notes.Contributors = make([]string, 0, len(contributors))
	for name := range contributors {
		notes.Contributors = append(notes.Contributors, name)
	}
	sort.Strings(notes.Contributors)

	// Highlights in fixed composition order: features, bug fixes, breaking.
	if len(notes.Features) > 0 {
		notes.Highlights = append(notes.Highlights, fmt.Sprintf("%d new feature(s) shipped", len(notes.Features)))
		notes.Highlights = append(notes.Highlights, notes.Features[0].Summary)
	}
	if len(notes.BugFixes) > 0 {
		notes.Highlights = append(notes.Highlights, fmt.Sprintf("%d bug(s) fixed", len(notes.BugFixes)))
	}
	if len(notes.BreakingChanges) > 0 {
		notes.Highlights = append(notes.Highlights, fmt.Sprintf("%d breaking change(s) - review before upgrading", len(notes.BreakingChanges)))
	}

	notes.Summary = fmt.Sprintf("This release includes %d change(s): %d feature(s), %d improvement(s) and %d bug fix(es).",
		len(issues), len(notes.Features), len(notes.Improvements), len(notes.BugFixes))

	notes.Markdown = renderMarkdown(&notes)
	notes.StorageMarkup = ToStorageMarkup(notes.Markdown)

	return notes
}

// categorize applies the first-match-wins category order.
func categorize(issue Issue) string {
	for _, label := range issue.Labels {
		l := strings.ToLower(label)
		if strings.Contains(l, "breaking-change") || strings.Contains(l, "breaking") {
			return "breaking"
		}
	}
	for _, label := range issue.Labels {
		if strings.Contains(strings.ToLower(label), "deprecated") {
			return "deprecated"
		}
	}

	switch strings.ToLower(issue.Type) {
	case "bug", "defect":
		return "bugfix"
	case "story", "feature", "new feature":
		return "feature"
	default:
		return "improvement"
	}
}

func toReleaseEntry(issue Issue) ReleaseEntry {
	entry := ReleaseEntry{Key: issue.Key, Summary: issue.Summary}
	if issue.Description != "" {
		desc := issue.Description
		if len(desc) > descriptionLimit {
			desc = desc[:descriptionLimit] + "..."
		}
		entry.Description = desc
	}
	return entry
}

func renderMarkdown(n *ReleaseNotes) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Release Notes - %s\n\n", n.Version)
	fmt.Fprintf(&b, "**Release Date:** %s\n\n", n.ReleaseDate)

	b.WriteString("## Summary\n\n")
	b.WriteString(n.Summary)
	b.WriteString("\n\n")

	if len(n.Highlights) > 0 {
		b.WriteString("## Highlights\n\n")
		for _, h := range n.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}

	writeSection(&b, "Breaking Changes", n.BreakingChanges)
	writeSection(&b, "Features", n.Features)
	writeSection(&b, "Improvements", n.Improvements)
	writeSection(&b, "Bug Fixes", n.BugFixes)
	writeSection(&b, "Deprecated", n.Deprecated)

	if len(n.Contributors) > 0 {
		b.WriteString("## Contributors\n\n")
		b.WriteString(strings.Join(n.Contributors, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Issues resolved: %d\n", n.Stats.IssueCount)
	if n.Stats.TotalCommits > 0 || n.Stats.FilesChanged > 0 {
		fmt.Fprintf(&b, "- Commits: %d\n", n.Stats.TotalCommits)
		fmt.Fprintf(&b, "- Files changed: %d\n", n.Stats.FilesChanged)
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, entries []ReleaseEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, e := range entries {
		fmt.Fprintf(b, "- **%s**: %s\n", e.Key, e.Summary)
		if e.Description != "" {
			fmt.Fprintf(b, "  - %s\n", e.Description)
		}
	}
	b.WriteString("\n")
}
