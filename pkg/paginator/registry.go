package paginator

import (
	"slices"
	"sync"
)

// Component is a rendered sub-widget inside a [Container].
type Component interface {
	// View returns the current rendering of the component.
	View() string
}

// Destroyer is implemented by components that hold subscriptions. Destroy is
// called when the paginator is destroyed.
type Destroyer interface {
	Destroy()
}

// ComponentFactory creates components for a template placeholder.
type ComponentFactory interface {
	// Initialize is called once per paginator, during construction, before
	// the construction attributes are applied. Factories define their
	// attributes here.
	Initialize(p *Paginator)
	// Render creates the component for one container. id is unique to the
	// paginator and container.
	Render(p *Paginator, id string) Component
}

// DefaultRegistry is used by paginators created without [WithRegistry].
var DefaultRegistry = NewRegistry()

// Register adds a factory to [DefaultRegistry].
func Register(name string, f ComponentFactory) {
	DefaultRegistry.Register(name, f)
}

// Registry maps template placeholder names to component factories.
type Registry struct {
	factories map[string]ComponentFactory
	names     []string
	mu        sync.RWMutex
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ComponentFactory),
	}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f ComponentFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		r.names = append(r.names, name)
	}

	r.factories[name] = f
}

// Get returns the factory for name.
func (r *Registry) Get(name string) (ComponentFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]

	return f, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.names)
}
