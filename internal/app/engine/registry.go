package engine

import (
	"fmt"
	"sync"
)

// Creator builds an engine from its settings map.
type Creator func(settings map[string]interface{}) (Engine, error)

var (
	creatorRegistry = make(map[string]Creator)
	registryMutex   sync.RWMutex
)

// RegisterEngine registers a creator under an engine name. Adapters call this
// from their init packages; the CLI imports those packages for side effects.
func RegisterEngine(name string, creator Creator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	creatorRegistry[name] = creator
}

// GetCreator returns the creator registered under name.
func GetCreator(name string) (Creator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := creatorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("engine %q not registered", name)
	}
	return creator, nil
}

// RegisteredEngines returns all registered engine names.
func RegisteredEngines() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(creatorRegistry))
	for name := range creatorRegistry {
		names = append(names, name)
	}
	return names
}
