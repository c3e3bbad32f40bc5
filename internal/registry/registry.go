// Package registry provides a global registry for engine modes.
// Modes register themselves in init() functions, allowing hosts to discover
// and instantiate engines without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
)

// ErrUnknownMode is returned when a mode ID is not registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Factory builds an engine for one mode around a host random source.
type Factory func(rand bridge.RandSource, cfg config.TetrisConfig) bridge.Engine

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an engine's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Title returns the display name of a mode, or the ID itself if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

// Open constructs a bridge whose engine is built by the given mode.
func Open(id string, rand bridge.RandSource, cfg config.TetrisConfig) (*bridge.Bridge, error) {
	f, err := lookup(id)
	if err != nil {
		return nil, err
	}
	return bridge.New(rand, func(r bridge.RandSource) bridge.Engine {
		return f(r, cfg)
	}), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

func lookup(id string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return f, nil
}
