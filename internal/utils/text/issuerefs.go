package text

import (
	"regexp"
	"strconv"
)

// refPattern matches Redmine issue references in the "fixes #1234" /
// "refs #1234, #5678" convention used in PR titles and commit messages.
var refPattern = regexp.MustCompile(`(?i)\b(?:fixes|refs)\s*((?:,?\s*#\d+)+)`)

var numberPattern = regexp.MustCompile(`#(\d+)`)

// ExtractIssueRefs scans the given texts in order and returns the referenced
// issue numbers, de-duplicated, in first-seen order. No references is a
// valid result and yields an empty slice.
func ExtractIssueRefs(texts ...string) []int {
	seen := make(map[int]struct{})
	refs := []int{}

	for _, t := range texts {
		for _, group := range refPattern.FindAllStringSubmatch(t, -1) {
			for _, num := range numberPattern.FindAllStringSubmatch(group[1], -1) {
				n, err := strconv.Atoi(num[1])
				if err != nil {
					continue
				}
				if _, dup := seen[n]; dup {
					continue
				}
				seen[n] = struct{}{}
				refs = append(refs, n)
			}
		}
	}

	return refs
}
