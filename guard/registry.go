package guard

import "sync"

// Registry owns one Guard per form id. Guards are created on first use with
// the registry's options and live as long as the registry.
type Registry struct {
	mu     sync.Mutex
	opts   options
	guards map[string]*Guard
}

// NewRegistry returns an empty registry whose guards use opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:   buildOptions(opts),
		guards: make(map[string]*Guard),
	}
}

// Guard returns the guard for formID, creating it in Idle state if needed.
func (r *Registry) Guard(formID string) *Guard {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.guards[formID]
	if !ok {
		g = newWithOptions(r.opts)
		r.guards[formID] = g
	}
	return g
}

// Lookup returns the guard for formID without creating it.
func (r *Registry) Lookup(formID string) (*Guard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guards[formID]
	return g, ok
}

// Submit attaches control (when non-nil) to the form's guard and submits.
func (r *Registry) Submit(formID string, control Control) Decision {
	g := r.Guard(formID)
	if control != nil {
		g.Attach(control)
	}
	return g.Submit()
}

// ResetAll returns every guard to Idle.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	guards := make([]*Guard, 0, len(r.guards))
	for _, g := range r.guards {
		guards = append(guards, g)
	}
	r.mu.Unlock()

	for _, g := range guards {
		g.Reset()
	}
}

// Len returns the number of known forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guards)
}
