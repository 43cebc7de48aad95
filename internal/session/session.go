// Package session persists the authenticated-session flags across restarts.
//
// Three keys are kept, named as the browser client named them in local
// storage: adminToken, isAuthenticated (the literal text "true" when set) and
// userRole. The store reads them once at startup and writes them on every
// session transition.
package session

import (
	"fmt"
	"strings"
)

// Storage keys.
const (
	KeyAuthToken       = "adminToken"
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserRole        = "userRole"
)

const authenticatedValue = "true"

// Session is the durable part of the store's session state.
type Session struct {
	IsAuthenticated bool
	AdminToken      string
	UserRole        string
}

// Anonymous reports whether s grants nothing.
func (s Session) Anonymous() bool {
	return !s.IsAuthenticated && s.AdminToken == ""
}

// Storage is the persistence adapter behind the store's session lifecycle.
type Storage interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the storage backend named kind rooted at dir.
func Open(kind, dir string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendBolt:
		return OpenBolt(boltPath(dir))
	case BackendFile:
		return NewFileStore(filePath(dir)), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", kind)
	}
}

func encode(s Session) map[string]string {
	values := map[string]string{
		KeyAuthToken:       s.AdminToken,
		KeyIsAuthenticated: "false",
		KeyUserRole:        s.UserRole,
	}
	if s.IsAuthenticated {
		values[KeyIsAuthenticated] = authenticatedValue
	}
	return values
}

// decode rebuilds a session from stored values. A flag without a token, or a
// token without the flag, is treated as anonymous.
func decode(values map[string]string) Session {
	s := Session{
		IsAuthenticated: values[KeyIsAuthenticated] == authenticatedValue,
		AdminToken:      strings.TrimSpace(values[KeyAuthToken]),
		UserRole:        strings.TrimSpace(values[KeyUserRole]),
	}
	if !s.IsAuthenticated || s.AdminToken == "" {
		return Session{}
	}
	return s
}
