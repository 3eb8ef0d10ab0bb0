package analytics

import (
	"fmt"
	"strings"
)

// Keyword tables for the rule-based classifier. Matching is unanchored,
// case-insensitive substring containment; "class" would match inside
// "classic". That fuzziness is a known property of the heuristic and is
// kept for compatibility with existing triage behavior.
var (
	epicKeywords        = []string{"epic", "initiative", "roadmap", "program"}
	storyKeywords       = []string{"as a user", "user story", "story"}
	bugKeywords         = []string{"bug", "broken", "crash", "error", "defect", "not working", "fails", "regression"}
	featureKeywords     = []string{"feature", "implement", "add support", "new capability", "introduce"}
	improvementKeywords = []string{"improve", "enhance", "optimize", "refactor", "cleanup", "upgrade"}

	urgentKeywords = []string{"urgent", "critical", "asap", "emergency", "blocker", "immediately", "outage", "data loss"}
	highKeywords   = []string{"important", "high priority", "blocking", "severe", "production"}
	lowKeywords    = []string{"minor", "trivial", "nice to have", "cosmetic", "low priority", "someday"}

	hugeIndicators    = []string{"rewrite", "overhaul", "migration", "redesign", "entire", "architecture", "from scratch"}
	complexIndicators = []string{"complex", "integration", "multiple", "refactor", "migrate", "several", "cross-team"}
	simpleIndicators  = []string{"typo", "rename", "text change", "color", "label", "simple", "one-line"}
)

// labelCategory pairs a suggested label with its trigger keywords.
type labelCategory struct {
	label    string
	keywords []string
}

// Fixed iteration order keeps label suggestions deterministic.
var labelCategories = []labelCategory{
	{"frontend", []string{"ui", "frontend", "css", "button", "screen", "interface", "display", "layout"}},
	{"backend", []string{"api", "backend", "server", "database", "endpoint", "query", "service"}},
	{"infrastructure", []string{"deploy", "docker", "kubernetes", "pipeline", "infrastructure", "terraform", "ci/cd"}},
	{"security", []string{"security", "auth", "vulnerability", "encryption", "permission", "xss", "injection"}},
	{"performance", []string{"performance", "slow", "latency", "optimize", "memory", "timeout", "throughput"}},
	{"documentation", []string{"document", "docs", "readme", "guide", "changelog"}},
	{"testing", []string{"test", "coverage", "qa", "flaky", "assertion"}},
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ClassifyText derives type, priority, labels, story points and advisory
// suggestions from free-form issue text. It is pure: similar-issue lookup is
// the caller's concern and attached afterwards via AttachSimilarIssues.
func ClassifyText(text string) TextAnalysis {
	lower := strings.ToLower(text)

	suggestedType := "Task"
	switch {
	case containsAny(lower, epicKeywords):
		suggestedType = "Epic"
	case containsAny(lower, storyKeywords):
		suggestedType = "Story"
	case containsAny(lower, bugKeywords):
		suggestedType = "Bug"
	case containsAny(lower, featureKeywords):
		suggestedType = "Story"
	case containsAny(lower, improvementKeywords):
		suggestedType = "Improvement"
	}

	priority := "Medium"
	switch {
	case containsAny(lower, urgentKeywords):
		priority = "Critical"
	case containsAny(lower, highKeywords):
		priority = "High"
	case containsAny(lower, lowKeywords):
		priority = "Low"
	}

	labels := []string{}
	for _, cat := range labelCategories {
		if containsAny(lower, cat.keywords) {
			labels = append(labels, cat.label)
		}
	}

	points := 3
	switch {
	case containsAny(lower, hugeIndicators):
		points = 13
	case containsAny(lower, complexIndicators):
		points = 8
	case containsAny(lower, simpleIndicators):
		points = 1
	}

	suggestions := []string{}
	if len(text) < 50 {
		suggestions = append(suggestions, "Description is very short - consider adding more detail")
	}
	if suggestedType == "Bug" && !strings.Contains(lower, "reproduce") {
		suggestions = append(suggestions, "Bug reports benefit from steps to reproduce")
	}
	if suggestedType == "Story" && !strings.Contains(lower, "acceptance") {
		suggestions = append(suggestions, "Consider adding acceptance criteria")
	}

	return TextAnalysis{
		SuggestedType:        suggestedType,
		SuggestedPriority:    priority,
		SuggestedLabels:      labels,
		EstimatedStoryPoints: points,
		SimilarIssues:        []SimilarIssue{},
		Suggestions:          suggestions,
	}
}

// SearchTerms extracts up to the first three words longer than four
// characters, for the best-effort similar-issue lookup. Surrounding
// punctuation is trimmed; the fuzzy substring semantics of the lookup are
// the tracker's concern.
func SearchTerms(text string) []string {
	var terms []string
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,:;!?\"'()[]{}")
		if len(word) > 4 {
			terms = append(terms, word)
		}
		if len(terms) == 3 {
			break
		}
	}
	return terms
}

// AttachSimilarIssues records lookup results and the matching advisory note.
// A nil or empty slice leaves the analysis unchanged, matching the
// best-effort degrade of the lookup itself.
func (a *TextAnalysis) AttachSimilarIssues(similar []SimilarIssue) {
	if len(similar) == 0 {
		return
	}
	a.SimilarIssues = similar
	a.Suggestions = append(a.Suggestions, fmt.Sprintf("Found %d similar issue(s) - check for duplicates before creating", len(similar)))
}
