package pipeline

import "testing"

func TestActionsEmptyIsSuccess(t *testing.T) {
	a := NewActions()
	if a.Failed() {
		t.Error("empty aggregator reported failure")
	}
	if len(a.Map()) != 0 {
		t.Errorf("expected empty map, got %v", a.Map())
	}
}

func TestActionsAnyFalseFails(t *testing.T) {
	a := NewActions()
	a.Record(SubsystemTracker, false)
	a.Record(SubsystemPlatform, true)

	if !a.Failed() {
		t.Error("false value did not produce failure")
	}
	m := a.Map()
	if m[SubsystemTracker] || !m[SubsystemPlatform] {
		t.Errorf("unexpected map %v", m)
	}
}

func TestActionsFailureIsSticky(t *testing.T) {
	a := NewActions()
	a.Record(SubsystemTracker, false)
	a.Record(SubsystemTracker, true)

	if !a.Failed() {
		t.Error("later success cleared an earlier failure")
	}
}

func TestActionsAbsentKeyDistinctFromFailure(t *testing.T) {
	a := NewActions()
	a.Record(SubsystemPlatform, true)

	if _, engaged := a.Map()[SubsystemTracker]; engaged {
		t.Error("tracker key present without being engaged")
	}
	if a.Failed() {
		t.Error("success-only aggregator reported failure")
	}
}
