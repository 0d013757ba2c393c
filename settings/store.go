// Package settings holds persisted, user-editable values with change notification.
package settings

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"
)

// Backend stores raw setting payloads by key. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type binding interface {
	Key() string
	load()
	applyOverride(node *yaml.Node) error
}

// Store owns the persisted values of one application.
type Store struct {
	backend  Backend
	bindings []binding
	byKey    map[string]binding
}

// Open creates a Store backed by gdata under appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps backend. A nil backend keeps values in memory only.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		byKey:   make(map[string]binding),
	}
}

func (s *Store) register(b binding) {
	if _, dup := s.byKey[b.Key()]; dup {
		panic(fmt.Sprintf("settings: key %q registered twice", b.Key()))
	}
	s.bindings = append(s.bindings, b)
	s.byKey[b.Key()] = b
	b.load()
}

// Keys returns the registered keys in registration order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		keys = append(keys, b.Key())
	}
	return keys
}

func (s *Store) loadItem(key string) []byte {
	if s == nil || s.backend == nil {
		return nil
	}
	data, err := s.backend.LoadItem(key)
	if err != nil {
		log.Printf("[settings] Warning: could not load %s: %v", key, err)
		return nil
	}
	return data
}

func (s *Store) saveItem(key string, data []byte) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.SaveItem(key, data); err != nil {
		log.Printf("[settings] Warning: could not save %s: %v", key, err)
	}
}

// MemoryBackend is an in-process Backend, used when no storage directory is available.
type MemoryBackend struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string][]byte)}
}

func (m *MemoryBackend) LoadItem(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) SaveItem(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), data...)
	return nil
}
