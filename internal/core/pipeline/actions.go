package pipeline

// Subsystem names used as Actions keys. An absent key means the subsystem
// was not engaged for the delivery, which is distinct from engaged-and-failed.
const (
	SubsystemTracker  = "redmine"
	SubsystemPlatform = "github"
)

// Actions accumulates per-subsystem success and failure flags for one
// delivery. Failure is sticky: once a subsystem records false, later
// successes do not clear it.
type Actions struct {
	results map[string]bool
}

// NewActions creates an empty aggregator.
func NewActions() *Actions {
	return &Actions{results: make(map[string]bool)}
}

// Record stores the outcome of one operation for a subsystem.
func (a *Actions) Record(subsystem string, ok bool) {
	if current, exists := a.results[subsystem]; exists && !current {
		return
	}
	a.results[subsystem] = ok
}

// Failed reports whether any subsystem recorded a failure.
func (a *Actions) Failed() bool {
	for _, ok := range a.results {
		if !ok {
			return true
		}
	}
	return false
}

// Map returns the accumulated results for serialization.
func (a *Actions) Map() map[string]bool {
	out := make(map[string]bool, len(a.results))
	for k, v := range a.results {
		out[k] = v
	}
	return out
}
