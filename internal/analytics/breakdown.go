package analytics

import "strings"

// Bucket is one of the four exclusive status buckets.
type Bucket int

const (
	BucketTodo Bucket = iota
	BucketInProgress
	BucketDone
	BucketBlocked
)

// ClassifyStatus maps a raw status label to exactly one bucket. Matching is
// on the lower-cased full name; anything unrecognized counts as todo, which
// keeps the partition total and exclusive.
func ClassifyStatus(status string) Bucket {
	switch strings.ToLower(status) {
	case "done", "closed", "resolved":
		return BucketDone
	case "in progress", "in review", "code review":
		return BucketInProgress
	case "blocked", "impediment":
		return BucketBlocked
	default:
		return BucketTodo
	}
}

// BuildBreakdown tallies a collection into an IssueBreakdown in one pass.
func BuildBreakdown(issues []Issue) IssueBreakdown {
	b := IssueBreakdown{Total: len(issues)}
	for _, issue := range issues {
		switch ClassifyStatus(issue.Status) {
		case BucketDone:
			b.Done++
		case BucketInProgress:
			b.InProgress++
		case BucketBlocked:
			b.Blocked++
		default:
			b.Todo++
		}
	}
	return b
}
