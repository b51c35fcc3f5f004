package labels

import "testing"

func TestReplaceRemovesThenAdds(t *testing.T) {
	s := NewSet(NeedsTesting, NotYetReviewed)
	s.Replace([]string{NotYetReviewed, NeedsReReview}, []string{WaitingOnContributor})

	want := NewSet(NeedsTesting, WaitingOnContributor)
	if !s.Equal(want) {
		t.Errorf("got %v, want %v", s.Values(), want.Values())
	}
}

func TestReplaceAbsentMembersIsNotAnError(t *testing.T) {
	s := NewSet("UI")
	s.Replace([]string{NeedsTesting, NeedsReReview}, []string{WaitingOnContributor})

	want := NewSet("UI", WaitingOnContributor)
	if !s.Equal(want) {
		t.Errorf("got %v, want %v", s.Values(), want.Values())
	}
}

func TestReplaceIsIdempotent(t *testing.T) {
	remove := []string{NotYetReviewed, NeedsReReview}
	add := []string{WaitingOnContributor}

	once := NewSet(NeedsTesting, NotYetReviewed)
	once.Replace(remove, add)

	twice := NewSet(NeedsTesting, NotYetReviewed)
	twice.Replace(remove, add)
	twice.Replace(remove, add)

	if !once.Equal(twice) {
		t.Errorf("double apply diverged: once=%v twice=%v", once.Values(), twice.Values())
	}
}

func TestReplaceAll(t *testing.T) {
	s := NewSet(WaitingOnContributor, "1.24")
	s.ReplaceAll(NeedsTesting, NotYetReviewed)

	if !s.Equal(NewSet(NeedsTesting, NotYetReviewed)) {
		t.Errorf("got %v", s.Values())
	}
}

func TestValuesSorted(t *testing.T) {
	s := NewSet("c", "a", "b")
	got := s.Values()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSet(NeedsTesting)
	c := s.Clone()
	c.Add(NeedsReReview)

	if s.Has(NeedsReReview) {
		t.Error("mutating the clone changed the original")
	}
}
