package bank

// Registry tracks question IDs seen so far in a run. It replaces the
// ambient seen-ID set the maintenance scripts used to share, so audit
// and repair passes stay composable and testable in isolation.
type Registry struct {
	seen map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add records id and reports whether it was new.
func (r *Registry) Add(id string) bool {
	if _, ok := r.seen[id]; ok {
		return false
	}
	r.seen[id] = struct{}{}
	return true
}

// Contains reports whether id has been recorded.
func (r *Registry) Contains(id string) bool {
	_, ok := r.seen[id]
	return ok
}

// Len returns the number of distinct IDs recorded.
func (r *Registry) Len() int {
	return len(r.seen)
}
