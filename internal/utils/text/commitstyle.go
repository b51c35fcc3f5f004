package text

import (
	"regexp"
	"strings"
)

// commitStylePattern is the required first-line format for commits in
// repositories where a tracker reference is mandatory:
// "Fixes #1234 - description" or "Refs #1234, #5678 - description".
var commitStylePattern = regexp.MustCompile(`(?i)^(?:fixes|refs)\s+#\d+(?:\s*,\s*#\d+)*\s+-\s+\S`)

// CheckCommitMessage reports whether a commit message's first line follows
// the required issue-reference format. Merge and revert commits are exempt.
func CheckCommitMessage(message string) bool {
	line := message
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		line = message[:idx]
	}
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "Merge ") || strings.HasPrefix(line, "Revert ") {
		return true
	}

	return commitStylePattern.MatchString(line)
}
