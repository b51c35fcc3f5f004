package steps

import (
	"strings"

	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// PathLabels applies configured labels derived from the paths the PR
// changes, e.g. a "UI" label for changes under webpack/.
type PathLabels struct {
	deps *pipeline.Dependencies
}

// NewPathLabels creates the step.
func NewPathLabels(deps *pipeline.Dependencies) *PathLabels {
	return &PathLabels{deps: deps}
}

// Name returns the step name.
func (s *PathLabels) Name() string {
	return "path_labels"
}

// Run adds every label whose configured path prefixes match a changed file.
func (s *PathLabels) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || c.Repo == nil || len(c.Repo.PathLabels) == 0 {
		return nil
	}

	if s.deps.DryRun {
		s.deps.Log.Infow("dry run: skipping path labels (changed files not fetched)",
			"pr", c.PR().Number)
		return nil
	}

	pr := c.PR()
	files, err := s.deps.GitHub.ListChangedFiles(c.Ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		s.deps.Log.Errorw("failed to list changed files", "pr", pr.Number, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return nil
	}

	var add []string
	for label, prefixes := range c.Repo.PathLabels {
		if matchesAnyPrefix(files, prefixes) {
			add = append(add, label)
		}
	}
	if len(add) > 0 {
		applyReplace(c, s.deps, nil, add)
	}
	return nil
}

func matchesAnyPrefix(files, prefixes []string) bool {
	for _, f := range files {
		for _, p := range prefixes {
			if strings.HasPrefix(f, p) {
				return true
			}
		}
	}
	return false
}
