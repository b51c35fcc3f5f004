package text

import (
	"fmt"
	"strings"
)

// issueLinksMarker identifies comments posted by IssueLinksComment so the
// same links are never posted twice for one pull request.
const issueLinksMarker = "<!-- prprocessor:issue-links -->"

// RebaseComment builds the comment posted on a pull request that can no
// longer be merged cleanly, addressed to the author and naming the branch
// to rebase against.
func RebaseComment(author, targetBranch string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s, this pull request is currently not mergeable. Please rebase against the %s branch and push again.\n\n", author, targetBranch)
	sb.WriteString("If you have a remote called 'upstream' that points to this repository, you can do this by running:\n\n")
	fmt.Fprintf(&sb, "```\n    $ git pull --rebase upstream %s\n```\n\n", targetBranch)
	sb.WriteString("---------------------------------------\n")
	sb.WriteString("This message was auto-generated by Foreman's [prprocessor](https://projects.theforeman.org/projects/foreman/wiki/PrProcessor)\n")
	return sb.String()
}

// IssueLinksComment builds the comment that cross-links the referenced
// tracker issues from the pull request. Returns "" when there is nothing
// to link.
func IssueLinksComment(trackerBaseURL string, issueNumbers []int) string {
	if len(issueNumbers) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(issueLinksMarker)
	sb.WriteString("\nIssues:")
	for _, n := range issueNumbers {
		fmt.Fprintf(&sb, " [#%d](%s/issues/%d)", n, strings.TrimSuffix(trackerBaseURL, "/"), n)
	}
	sb.WriteString("\n")
	return sb.String()
}

// IsIssueLinksComment reports whether body is a previously posted issue
// links comment.
func IsIssueLinksComment(body string) bool {
	return strings.Contains(body, issueLinksMarker)
}
