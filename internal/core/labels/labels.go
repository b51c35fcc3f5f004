// Package labels defines the review-lifecycle labels and the set algebra
// the rule table operates on. The recognized labels form a closed enum;
// path- and branch-derived labels are free-form strings layered on top.
package labels

import "sort"

// Review-lifecycle labels managed by the processor.
const (
	NeedsTesting         = "Needs testing"
	NotYetReviewed       = "Not yet reviewed"
	NeedsReReview        = "Needs re-review"
	WaitingOnContributor = "Waiting on contributor"
)

// Set is an unordered collection of label names.
// The zero value is not usable; use NewSet.
type Set struct {
	members map[string]struct{}
}

// NewSet creates a set containing the given labels.
func NewSet(names ...string) *Set {
	s := &Set{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.members[n] = struct{}{}
	}
	return s
}

// Has reports whether the set contains name.
func (s *Set) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Add inserts names into the set. Adding a present label is a no-op.
func (s *Set) Add(names ...string) {
	for _, n := range names {
		s.members[n] = struct{}{}
	}
}

// Remove deletes names from the set. Removing an absent label is a no-op.
func (s *Set) Remove(names ...string) {
	for _, n := range names {
		delete(s.members, n)
	}
}

// Replace removes every label in remove, then adds every label in add.
// Applying the same Replace twice yields the same final set as once.
func (s *Set) Replace(remove, add []string) {
	s.Remove(remove...)
	s.Add(add...)
}

// ReplaceAll discards the current members and installs exactly names.
func (s *Set) ReplaceAll(names ...string) {
	s.members = make(map[string]struct{}, len(names))
	s.Add(names...)
}

// Values returns the members in sorted order.
func (s *Set) Values() []string {
	out := make([]string, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Equal reports whether both sets contain exactly the same labels.
func (s *Set) Equal(other *Set) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for n := range s.members {
		if !other.Has(n) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return NewSet(s.Values()...)
}
