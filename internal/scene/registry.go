package scene

import (
	"fmt"
	"sort"
	"sync"
)

// Exercise composes a scene each frame.
type Exercise interface {
	Compose(c *Context)
}

// KeyHandler is implemented by exercises that react to keys the
// application does not bind itself.
type KeyHandler interface {
	HandleKey(key string)
}

// Factory creates a fresh exercise instance.
type Factory func() Exercise

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an exercise available under name. It panics if the name
// is taken or the factory is nil.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f == nil {
		panic("scene: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("scene: Register called twice for %q", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered exercise names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DrawAll draws every loaded object. It stands in when no exercise is
// configured.
type DrawAll struct{}

// Compose implements Exercise.
func (DrawAll) Compose(c *Context) {
	if names := c.ObjectNames(); len(names) > 0 {
		c.Draw(names...)
	}
}
