package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Workload status thresholds on assigned-issue count, inclusive upper bounds.
const (
	WorkloadUnderutilized = "underutilized"
	WorkloadOptimal       = "optimal"
	WorkloadHeavy         = "heavy"
	WorkloadOverloaded    = "overloaded"
)

// overdueAfter is the staleness window for the update-timestamp heuristic.
// There is no due-date field in the view; "overdue" means unclosed and
// untouched for longer than this.
const overdueAfter = 14 * 24 * time.Hour

// BuildWorkloadDashboard partitions issues by assignee and computes
// per-member and aggregate metrics. Unassigned issues are excluded entirely:
// they count toward no member and not toward the team total.
func BuildWorkloadDashboard(issues []Issue, now time.Time) WorkloadDashboard {
	byMember := make(map[string][]Issue)
	for _, issue := range issues {
		if issue.Assignee == "" {
			continue
		}
		byMember[issue.Assignee] = append(byMember[issue.Assignee], issue)
	}

	members := make([]MemberWorkload, 0, len(byMember))
	counts := make([]int, 0, len(byMember))
	totalIssues := 0

	for name, assigned := range byMember {
		m := MemberWorkload{Member: name, Assigned: len(assigned), RiskFactors: []string{}}
		for _, issue := range assigned {
			bucket := ClassifyStatus(issue.Status)
			if bucket == BucketInProgress {
				m.InProgress++
			}
			if bucket != BucketDone && now.Sub(issue.Updated) > overdueAfter {
				m.Overdue++
			}
		}

		m.Status = workloadStatus(m.Assigned)
		if m.Status == WorkloadOverloaded {
			m.RiskFactors = append(m.RiskFactors, fmt.Sprintf("Overloaded with %d assigned issues", m.Assigned))
		}
		if m.InProgress > 3 {
			m.RiskFactors = append(m.RiskFactors, fmt.Sprintf("Too many parallel items: %d in progress", m.InProgress))
		}
		if m.Overdue > 0 {
			m.RiskFactors = append(m.RiskFactors, fmt.Sprintf("%d issue(s) stale for over 14 days", m.Overdue))
		}

		members = append(members, m)
		counts = append(counts, m.Assigned)
		totalIssues += m.Assigned
	}

	// Deterministic ordering: heaviest first, name as tiebreaker.
	sort.Slice(members, func(i, j int) bool {
		if members[i].Assigned != members[j].Assigned {
			return members[i].Assigned > members[j].Assigned
		}
		return members[i].Member < members[j].Member
	})

	sigma := StdDev(counts)
	balance := Clamp(int(math.Round(100-10*sigma)), 0, 100)

	var overloaded, underutilized, wipHeavy []string
	bottlenecks := []string{}
	for _, m := range members {
		switch m.Status {
		case WorkloadOverloaded:
			overloaded = append(overloaded, m.Member)
			bottlenecks = append(bottlenecks, fmt.Sprintf("%s (%d issues)", m.Member, m.Assigned))
		case WorkloadUnderutilized:
			underutilized = append(underutilized, m.Member)
		}
		if m.InProgress > 3 {
			wipHeavy = append(wipHeavy, m.Member)
		}
	}

	recommendations := []string{}
	if len(overloaded) > 0 && len(underutilized) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Redistribute work from %s to %s",
			strings.Join(overloaded, ", "), strings.Join(underutilized, ", ")))
	}
	for _, name := range wipHeavy {
		recommendations = append(recommendations, fmt.Sprintf("%s should finish in-progress items before picking up new work", name))
	}
	if balance < 50 {
		recommendations = append(recommendations, "Workload is unevenly distributed - rebalance assignments across the team")
	}

	return WorkloadDashboard{
		Members:         members,
		TeamSize:        len(members),
		TotalIssues:     totalIssues,
		AverageWorkload: Mean(counts),
		BalanceScore:    balance,
		Recommendations: recommendations,
		Bottlenecks:     bottlenecks,
	}
}

func workloadStatus(assigned int) string {
	switch {
	case assigned <= 2:
		return WorkloadUnderutilized
	case assigned <= 5:
		return WorkloadOptimal
	case assigned <= 8:
		return WorkloadHeavy
	default:
		return WorkloadOverloaded
	}
}
