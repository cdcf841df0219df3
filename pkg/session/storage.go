package session

import (
	"net/url"
	"sync"
)

// TokenKey is where the session token is persisted.
const TokenKey = "token"

// Storage is the client's persistent key-value store.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	// Clear removes every key.
	Clear()
}

// Location is the client's current address.
type Location interface {
	Href() string
	// Replace rewrites the address without navigating.
	Replace(href string)
	// Assign navigates away.
	Assign(href string)
}

type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStorage) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// StaticLocation records address changes instead of performing them.
type StaticLocation struct {
	mu         sync.Mutex
	href       string
	assignedTo string
}

func NewStaticLocation(href string) *StaticLocation {
	return &StaticLocation{href: href}
}

func (l *StaticLocation) Href() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.href
}

func (l *StaticLocation) Replace(href string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.href = href
}

func (l *StaticLocation) Assign(href string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.assignedTo = href
}

// AssignedTo is the last navigation target, empty if none.
func (l *StaticLocation) AssignedTo() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.assignedTo
}

// Query returns the parsed query of the current address.
func (l *StaticLocation) Query() url.Values {
	u, err := url.Parse(l.Href())
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}
