package back

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/gnustep/libs-back/headless"
	"github.com/gnustep/libs-back/winbuf"
	"github.com/gnustep/libs-back/x11"
)

// Errors returned when opening displays by name.
var (
	// ErrUnknownDisplay is returned for a name nothing registered.
	ErrUnknownDisplay = errors.New("back: unknown display")

	// ErrDisplayUnavailable is returned for a registered display whose
	// availability check fails.
	ErrDisplayUnavailable = errors.New("back: display unavailable")

	// ErrNoDisplay is returned by OpenBest when no display is available.
	ErrNoDisplay = errors.New("back: no display available")
)

// DisplayFactory connects to a display.
type DisplayFactory func() (winbuf.Display, error)

// RegistryEntry is a registered display.
type RegistryEntry struct {
	// Name is the unique identifier for this display.
	Name string

	// Priority determines selection order (higher = preferred).
	//   - 100: real window systems
	//   - 10: off-screen displays
	Priority int

	Factory DisplayFactory

	// Available reports whether the display can be opened on this system.
	Available func() bool
}

// Registry holds named display factories.
//
// Example registration:
//
//	func init() {
//	    back.Register("wayland", 100, waylandFactory, waylandAvailable)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry. Most code uses the global one
// through Register, Open and OpenBest.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a display to the global registry. If available is nil the
// display is assumed always available. Registering an existing name
// replaces the entry.
func Register(name string, priority int, factory DisplayFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a display from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns all registered display names, highest priority first.
func List() []string { return globalRegistry.List() }

// Available returns the names of available displays, highest priority
// first.
func Available() []string { return globalRegistry.Available() }

// Open connects to the named display and sets up a backend on it.
func Open(name string, opts ...Option) (*Backend, error) {
	return globalRegistry.Open(name, opts...)
}

// OpenBest opens the available display with the highest priority.
func OpenBest(opts ...Option) (*Backend, error) {
	return globalRegistry.OpenBest(opts...)
}

// Register adds a display to r.
func (r *Registry) Register(name string, priority int, factory DisplayFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a display from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns all display names in r by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// Available returns the names of available displays in r by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(true)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	c := *e
	return &c, true
}

// Open connects to the named display and sets up a backend on it.
func (r *Registry) Open(name string, opts ...Option) (*Backend, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDisplay, name)
	}
	if !e.Available() {
		return nil, fmt.Errorf("%w: %q", ErrDisplayUnavailable, name)
	}
	d, err := e.Factory()
	if err != nil {
		return nil, fmt.Errorf("back: opening %q: %w", name, err)
	}
	return New(d, opts...), nil
}

// OpenBest tries the available displays in priority order and returns a
// backend on the first that opens.
func (r *Registry) OpenBest(opts ...Option) (*Backend, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	var errs []error
	for _, name := range names {
		b, err := r.Open(name, opts...)
		if err == nil {
			return b, nil
		}
		Logger().Warn("back: display failed, trying next", "display", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(append([]error{ErrNoDisplay}, errs...)...)
}

// sortedNames returns names by priority, highest first; ties sort by
// name. Must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func init() {
	Register("x11", 100, func() (winbuf.Display, error) {
		return x11.Open()
	}, func() bool { return os.Getenv("DISPLAY") != "" })

	Register("headless", 10, func() (winbuf.Display, error) {
		return headless.New(), nil
	}, nil)
}
