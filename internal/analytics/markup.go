package analytics

import (
	"fmt"
	"regexp"
	"strings"
)

// markupRule is a single regex substitution applied to the markdown source.
type markupRule struct {
	pattern *regexp.Regexp
	replace string
}

// The conversion to wiki storage markup is a fixed, ordered list of
// independent substitutions. It is intentionally lossy and non-recursive;
// nested or malformed markdown degrades gracefully rather than erroring.
// Do not extend this into a general-purpose markdown parser.
var markupRules = []markupRule{
	{regexp.MustCompile(`(?m)^### (.+)$`), "h3. $1"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "h2. $1"},
	{regexp.MustCompile(`(?m)^# (.+)$`), "h1. $1"},
	// Italic runs before bold so the single asterisks emitted for bold
	// are not re-matched as markdown italics.
	{regexp.MustCompile(`(?m)(^|[^*])\*([^*\n]+)\*($|[^*])`), "${1}_${2}_${3}"},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "*$1*"},
	{regexp.MustCompile("(?s)```[a-z]*\n(.*?)```"), "{code}\n$1{code}"},
	{regexp.MustCompile("`([^`\n]+)`"), "{{$1}}"},
	{regexp.MustCompile(`(?m)^- `), "* "},
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), "[$1|$2]"},
}

// ToStorageMarkup converts rendered markdown into simplified wiki storage
// markup via the ordered substitution pipeline above.
func ToStorageMarkup(markdown string) string {
	out := markdown
	for _, rule := range markupRules {
		out = rule.pattern.ReplaceAllString(out, rule.replace)
	}
	return out
}

// StorageTitle builds the conventional page title for a published release.
func StorageTitle(projectKey, version string) string {
	return fmt.Sprintf("%s Release Notes - %s", strings.ToUpper(projectKey), version)
}
