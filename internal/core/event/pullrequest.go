package event

import (
	"github.com/google/go-github/v60/github"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/utils/text"
)

// PullRequest is the processor's view over the pull request in a payload.
// Labels holds the current label set and is kept in sync as label rules
// apply their writes.
type PullRequest struct {
	Owner  string
	Repo   string
	Number int

	Author       string
	Title        string
	Body         string
	HTMLURL      string
	TargetBranch string
	HeadSHA      string

	// MergeableState is GitHub's mergeable_state; "dirty" means the PR
	// cannot be merged without manual conflict resolution.
	MergeableState string

	Labels *labels.Set

	// CherryPick is true when the PR targets a stable release branch;
	// such ports are exempt from fresh issue linking.
	CherryPick bool

	// CommitMessages are the PR's commit messages, fetched lazily when
	// tracker processing engages.
	CommitMessages []string

	// IssueRefs are the referenced tracker issue numbers, derived
	// deterministically from the title and commit messages.
	IssueRefs []int
}

func newPullRequest(repo *github.Repository, pr *github.PullRequest) *PullRequest {
	names := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		names = append(names, l.GetName())
	}

	return &PullRequest{
		Owner:          repo.GetOwner().GetLogin(),
		Repo:           repo.GetName(),
		Number:         pr.GetNumber(),
		Author:         pr.GetUser().GetLogin(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		HTMLURL:        pr.GetHTMLURL(),
		TargetBranch:   pr.GetBase().GetRef(),
		HeadSHA:        pr.GetHead().GetSHA(),
		MergeableState: pr.GetMergeableState(),
		Labels:         labels.NewSet(names...),
		IssueRefs:      []int{},
	}
}

// Resolve fills in the configuration-dependent fields: cherry-pick
// detection against the repo's stable branches and issue references from
// the title plus the given commit messages.
func (pr *PullRequest) Resolve(repo *config.Repository, commitMessages []string) {
	if repo != nil {
		pr.CherryPick = repo.IsStableBranch(pr.TargetBranch)
	}
	pr.CommitMessages = commitMessages

	texts := append([]string{pr.Title}, commitMessages...)
	pr.IssueRefs = text.ExtractIssueRefs(texts...)
}

// Dirty reports whether the PR cannot be merged cleanly.
func (pr *PullRequest) Dirty() bool {
	return pr.MergeableState == "dirty"
}

// WaitingOnContributor reports whether the PR currently carries the
// "Waiting on contributor" label.
func (pr *PullRequest) WaitingOnContributor() bool {
	return pr.Labels.Has(labels.WaitingOnContributor)
}

// NotYetReviewed reports whether the PR currently carries the
// "Not yet reviewed" label.
func (pr *PullRequest) NotYetReviewed() bool {
	return pr.Labels.Has(labels.NotYetReviewed)
}
