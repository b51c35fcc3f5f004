package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Repository is the per-repository configuration, keyed by the GitHub
// "owner/name" in repos.yaml.
type Repository struct {
	// FullName is the "owner/name" key, filled in during load.
	FullName string `yaml:"-"`

	// RedmineProject is the linked Redmine project identifier. Empty means
	// no tracker synchronization for this repository.
	RedmineProject string `yaml:"redmine_project,omitempty"`

	// AllowedProjects lists additional Redmine project identifiers whose
	// issues this repository may act on. RedmineProject is always allowed.
	AllowedProjects []string `yaml:"allowed_projects,omitempty"`

	// RedmineRequired enforces the commit message style check referencing
	// a tracker issue.
	RedmineRequired bool `yaml:"redmine_required,omitempty"`

	// LinkToRedmine posts tracker cross-links on the pull request.
	LinkToRedmine bool `yaml:"link_to_redmine,omitempty"`

	// Branches are the stable release branches. Pull requests targeting one
	// of them are treated as cherry-picks.
	Branches []string `yaml:"branches,omitempty"`

	// PathLabels maps a label to the changed-file path prefixes that
	// trigger it.
	PathLabels map[string][]string `yaml:"path_labels,omitempty"`

	// BranchLabels maps a target branch name to the labels it triggers.
	BranchLabels map[string][]string `yaml:"branch_labels,omitempty"`
}

// Repositories holds all configured repositories keyed by full name.
type Repositories map[string]*Repository

// LoadRepositories reads repos.yaml from the given path.
func LoadRepositories(path string) (Repositories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read repos config: %w", err)
	}

	var repos Repositories
	if err := yaml.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("failed to parse repos config: %w", err)
	}

	for name, repo := range repos {
		repo.FullName = name
	}

	return repos, nil
}

// Get returns the configuration for a repository, or nil if not configured.
func (r Repositories) Get(fullName string) *Repository {
	return r[fullName]
}

// Names returns the configured repository full names.
func (r Repositories) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

// RedmineIndex maps each Redmine project identifier to the repositories
// linked to it and their stable branches. Repositories without a Redmine
// project are excluded.
func (r Repositories) RedmineIndex() map[string]map[string][]string {
	index := make(map[string]map[string][]string)
	for name, repo := range r {
		if repo.RedmineProject == "" {
			continue
		}
		if index[repo.RedmineProject] == nil {
			index[repo.RedmineProject] = make(map[string][]string)
		}
		index[repo.RedmineProject][name] = repo.Branches
	}
	return index
}

// ProjectAllowed reports whether issues in the given Redmine project may be
// mutated on behalf of this repository.
func (repo *Repository) ProjectAllowed(identifier string) bool {
	if identifier == repo.RedmineProject && identifier != "" {
		return true
	}
	for _, p := range repo.AllowedProjects {
		if p == identifier {
			return true
		}
	}
	return false
}

// IsStableBranch reports whether branch is one of the configured stable
// release branches. Pull requests against stable branches are cherry-picks.
func (repo *Repository) IsStableBranch(branch string) bool {
	for _, b := range repo.Branches {
		if b == branch {
			return true
		}
	}
	return false
}
