package redmine

import (
	"fmt"
)

// Issue status IDs in the tracker's workflow.
const (
	StatusNew             = 1
	StatusAssigned        = 2
	StatusResolved        = 3
	StatusClosed          = 5
	StatusRejected        = 6
	StatusReadyForTesting = 7
	StatusDuplicate       = 9
)

// Special target version names that mean an issue is not scheduled.
const (
	VersionBacklog    = "Backlog"
	VersionRecycleBin = "Recycle Bin"
)

// Custom field IDs used by the triage workflow.
const (
	CustomFieldTriaged     = 4
	CustomFieldPullRequest = 7
)

// IDName is the compact id/name pair Redmine uses for associations.
type IDName struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Project describes a Redmine project.
type Project struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier,omitempty"`
	Name       string `json:"name,omitempty"`
}

// CustomField is a custom field value attached to an issue. Value is a
// string for single-value fields and a []string for multi-value fields.
type CustomField struct {
	ID    int         `json:"id"`
	Name  string      `json:"name,omitempty"`
	Value interface{} `json:"value"`
}

// Issue is the tracker's view of a work item. Reads populate the exported
// fields; mutations go through the Set* methods, which update the view and
// accumulate the pending update payload returned by Changes.
type Issue struct {
	ID           int           `json:"id"`
	Project      Project       `json:"project"`
	Subject      string        `json:"subject,omitempty"`
	Status       IDName        `json:"status"`
	FixedVersion *IDName       `json:"fixed_version,omitempty"`
	AssignedTo   *IDName       `json:"assigned_to,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`

	changes map[string]interface{}
}

func (i *Issue) String() string {
	return fmt.Sprintf("#%d", i.ID)
}

// Rejected reports whether the issue is in the rejected status. Rejected
// issues are frozen against the synchronization workflow.
func (i *Issue) Rejected() bool {
	return i.Status.ID == StatusRejected
}

// Closed reports whether the issue is in a terminal status.
func (i *Issue) Closed() bool {
	switch i.Status.ID {
	case StatusClosed, StatusRejected, StatusDuplicate:
		return true
	}
	return false
}

// Backlog reports whether the issue's target version is the backlog.
func (i *Issue) Backlog() bool {
	return i.FixedVersion != nil && i.FixedVersion.Name == VersionBacklog
}

// RecycleBin reports whether the issue's target version is the recycle bin.
func (i *Issue) RecycleBin() bool {
	return i.FixedVersion != nil && i.FixedVersion.Name == VersionRecycleBin
}

// Triaged reports the triaged custom field flag.
func (i *Issue) Triaged() bool {
	f := i.customField(CustomFieldTriaged)
	if f == nil {
		return false
	}
	s, _ := f.Value.(string)
	return s == "1"
}

// PullRequestURLs returns the PR links recorded on the issue.
func (i *Issue) PullRequestURLs() []string {
	f := i.customField(CustomFieldPullRequest)
	if f == nil {
		return nil
	}
	switch v := f.Value.(type) {
	case []string:
		return v
	case []interface{}:
		urls := make([]string, 0, len(v))
		for _, u := range v {
			if s, ok := u.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// SetTriaged updates the triaged flag. A no-op when the flag already has
// the requested value.
func (i *Issue) SetTriaged(triaged bool) {
	value := "0"
	if triaged {
		value = "1"
	}
	if i.Triaged() == triaged {
		return
	}
	i.setCustomField(CustomFieldTriaged, value)
}

// ClearTargetVersion removes the issue's target version. A no-op when no
// version is assigned.
func (i *Issue) ClearTargetVersion() {
	if i.FixedVersion == nil {
		return
	}
	i.FixedVersion = nil
	i.change("fixed_version_id", "")
}

// AddPullRequest links a PR URL to the issue. Linking an already linked URL
// is a no-op; the same URL is never duplicated.
func (i *Issue) AddPullRequest(url string) {
	urls := i.PullRequestURLs()
	for _, u := range urls {
		if u == url {
			return
		}
	}
	i.setCustomField(CustomFieldPullRequest, append(urls, url))
}

// SetStatus moves the issue to the given status. A no-op when already there.
func (i *Issue) SetStatus(statusID int) {
	if i.Status.ID == statusID {
		return
	}
	i.Status = IDName{ID: statusID}
	i.change("status_id", statusID)
}

// SetAssignee assigns the issue to the given user. A no-op when the issue
// already has that assignee.
func (i *Issue) SetAssignee(userID int) {
	if i.AssignedTo != nil && i.AssignedTo.ID == userID {
		return
	}
	i.AssignedTo = &IDName{ID: userID}
	i.change("assigned_to_id", userID)
}

// HasChanges reports whether any mutation is pending.
func (i *Issue) HasChanges() bool {
	return len(i.changes) > 0
}

// Changes returns the pending update payload for PUT /issues/{id}.json.
func (i *Issue) Changes() map[string]interface{} {
	return i.changes
}

func (i *Issue) customField(id int) *CustomField {
	for idx := range i.CustomFields {
		if i.CustomFields[idx].ID == id {
			return &i.CustomFields[idx]
		}
	}
	return nil
}

func (i *Issue) setCustomField(id int, value interface{}) {
	if f := i.customField(id); f != nil {
		f.Value = value
	} else {
		i.CustomFields = append(i.CustomFields, CustomField{ID: id, Value: value})
	}

	// Custom field updates are sent together as one list.
	fields, _ := i.changeCustomFields()
	updated := false
	for idx := range fields {
		if fields[idx].ID == id {
			fields[idx].Value = value
			updated = true
		}
	}
	if !updated {
		fields = append(fields, CustomField{ID: id, Value: value})
	}
	i.change("custom_fields", fields)
}

func (i *Issue) changeCustomFields() ([]CustomField, bool) {
	raw, ok := i.changes["custom_fields"]
	if !ok {
		return nil, false
	}
	fields, ok := raw.([]CustomField)
	return fields, ok
}

func (i *Issue) change(key string, value interface{}) {
	if i.changes == nil {
		i.changes = make(map[string]interface{})
	}
	i.changes[key] = value
}
