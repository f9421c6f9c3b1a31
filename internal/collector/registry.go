package collector

import "github.com/rotisserie/eris"

// Registry maps collector names to their implementations.
type Registry struct {
	collectors map[string]Collector
	order      []string // insertion order for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
	}
}

// Register adds a collector to the registry.
func (r *Registry) Register(c Collector) {
	name := c.Name()
	r.collectors[name] = c
	r.order = append(r.order, name)
}

// Get returns a collector by name.
func (r *Registry) Get(name string) (Collector, error) {
	c, ok := r.collectors[name]
	if !ok {
		return nil, eris.Errorf("collector: unknown collector %q", name)
	}
	return c, nil
}

// All returns every collector in registration order.
func (r *Registry) All() []Collector {
	out := make([]Collector, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.collectors[name])
	}
	return out
}

// Select returns collectors matching the given criteria. If names is
// non-empty, only those named collectors are returned. If mode is non-nil,
// only collectors running in that mode are returned.
func (r *Registry) Select(mode *Mode, names []string) ([]Collector, error) {
	if len(names) > 0 {
		var result []Collector
		for _, name := range names {
			c, err := r.Get(name)
			if err != nil {
				return nil, err
			}
			if mode != nil && c.Mode() != *mode {
				continue
			}
			result = append(result, c)
		}
		return result, nil
	}

	var result []Collector
	for _, c := range r.All() {
		if mode != nil && c.Mode() != *mode {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}
