package analytics

import "fmt"

// Health status bands, inclusive on the lower bound.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthAtRisk    = "at-risk"
	HealthCritical  = "critical"
)

// ScoreSprintHealth computes the full health result for a sprint's issue
// collection. An empty collection is scored with the same formula (the
// completion term alone yields 50, i.e. at-risk); callers should treat that
// as expected behavior for an empty sprint, not an error.
func ScoreSprintHealth(sprintID int, sprintName string, issues []Issue) SprintHealthResult {
	breakdown := BuildBreakdown(issues)

	risks := []string{}
	hasUnassigned := false
	for _, issue := range issues {
		if ClassifyStatus(issue.Status) == BucketDone {
			continue
		}
		if issue.Assignee == "" {
			risks = append(risks, fmt.Sprintf("%s is unassigned", issue.Key))
			hasUnassigned = true
		}
		if issue.Priority == "" {
			risks = append(risks, fmt.Sprintf("%s has no priority set", issue.Key))
		}
	}

	completionRate := percentage(breakdown.Done, breakdown.Total)

	score := 100
	if completionRate < 50 {
		score -= 50 - completionRate
	}
	score -= 5 * breakdown.Blocked

	wipOverloaded := float64(breakdown.InProgress) > 0.4*float64(breakdown.Total)
	if wipOverloaded {
		score -= 10
		risks = append(risks, fmt.Sprintf("High WIP: %d of %d issues are in progress", breakdown.InProgress, breakdown.Total))
	}

	moreRemaining := breakdown.Todo > breakdown.Done && completionRate < 50
	if moreRemaining {
		score -= 10
		risks = append(risks, fmt.Sprintf("More work remaining (%d todo) than completed (%d done)", breakdown.Todo, breakdown.Done))
	}

	score = Clamp(score, 0, 100)

	status := healthStatus(score)

	burndown := "on-track"
	if completionRate > 70 {
		burndown = "ahead"
	} else if completionRate < 30 && breakdown.InProgress < 3 {
		burndown = "behind"
	}

	recommendations := []string{}
	if breakdown.Blocked > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Address %d blocked issue(s) to unblock sprint progress", breakdown.Blocked))
	}
	if wipOverloaded {
		recommendations = append(recommendations, "Finish in-progress work before starting new items")
	}
	if hasUnassigned {
		recommendations = append(recommendations, "Assign owners to unassigned issues")
	}
	if completionRate < 50 && breakdown.Todo > 5 {
		recommendations = append(recommendations, "Consider reducing sprint scope to protect the committed goal")
	}
	if len(recommendations) == 0 && status == HealthExcellent {
		recommendations = append(recommendations, "Sprint is healthy - maintain current pace")
	}

	return SprintHealthResult{
		SprintID:        sprintID,
		SprintName:      sprintName,
		HealthScore:     score,
		HealthStatus:    status,
		Breakdown:       breakdown,
		CompletionRate:  completionRate,
		BurndownHealth:  burndown,
		BlockedCount:    breakdown.Blocked,
		Risks:           risks,
		Recommendations: recommendations,
	}
}

func healthStatus(score int) string {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthAtRisk
	default:
		return HealthCritical
	}
}
