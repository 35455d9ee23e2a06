package bus

import "sync"

// Signal is a payload-free notification shared between UI surfaces.
type Signal string

const (
	// SignalCartChanged fires after every cart mutation; observers re-read
	// the persisted store.
	SignalCartChanged Signal = "cart_changed"
	// SignalOpenCart asks the shell to open the cart panel.
	SignalOpenCart Signal = "open_cart"
)

// Bus is an explicit observer registry owned by the application shell and
// injected into the components that need it. Duplicate deliveries are
// harmless, observers re-read idempotently.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Signal]map[int]func()
}

func New() *Bus {
	return &Bus{subs: make(map[Signal]map[int]func())}
}

// Subscribe registers fn for a signal and returns an unsubscribe func.
func (b *Bus) Subscribe(sig Signal, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[sig] == nil {
		b.subs[sig] = make(map[int]func())
	}
	id := b.nextID
	b.nextID++
	b.subs[sig][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[sig], id)
	}
}

// Publish invokes every observer of sig synchronously, in no particular
// order. Publishing a signal nobody observes is a no-op.
func (b *Bus) Publish(sig Signal) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subs[sig]))
	for _, fn := range b.subs[sig] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
