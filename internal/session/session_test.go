package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBackends_RoundTripAndClear(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"bolt": func(t *testing.T) Storage {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "nested", "session.db"))
			if err != nil {
				t.Fatalf("OpenBolt: %v", err)
			}
			return s
		},
		"file": func(t *testing.T) Storage {
			return NewFileStore(filepath.Join(t.TempDir(), "nested", "session.toml"))
		},
		"memory": func(t *testing.T) Storage {
			return NewMemoryStore()
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			t.Cleanup(func() { _ = store.Close() })

			got, err := store.Load()
			if err != nil {
				t.Fatalf("Load on empty store: %v", err)
			}
			if !got.Anonymous() {
				t.Fatalf("empty store Load = %#v, want anonymous", got)
			}

			want := Session{IsAuthenticated: true, AdminToken: "tok", UserRole: "admin"}
			if err := store.Save(want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err = store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != want {
				t.Fatalf("Load = %#v, want %#v", got, want)
			}

			if err := store.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			got, err = store.Load()
			if err != nil {
				t.Fatalf("Load after Clear: %v", err)
			}
			if got != (Session{}) {
				t.Fatalf("Load after Clear = %#v, want zero session", got)
			}

			if err := store.Clear(); err != nil {
				t.Fatalf("second Clear should be a no-op, got %v", err)
			}
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := first.Save(Session{IsAuthenticated: true, AdminToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.IsAuthenticated || got.AdminToken != "tok" {
		t.Fatalf("Load after reopen = %#v, want authenticated tok", got)
	}
}

func TestDecode_PartialStateIsAnonymous(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]string
	}{
		{"flag_without_token", map[string]string{KeyIsAuthenticated: "true"}},
		{"token_without_flag", map[string]string{KeyAuthToken: "tok"}},
		{"flag_not_literal_true", map[string]string{KeyAuthToken: "tok", KeyIsAuthenticated: "TRUE"}},
		{"blank_token", map[string]string{KeyAuthToken: "   ", KeyIsAuthenticated: "true"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decode(tc.values); got != (Session{}) {
				t.Fatalf("decode(%v) = %#v, want zero session", tc.values, got)
			}
		})
	}
}

func TestFileStore_StoresLiteralTrue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	store := NewFileStore(path)
	if err := store.Save(Session{IsAuthenticated: true, AdminToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "isAuthenticated") || !strings.Contains(text, "true") {
		t.Fatalf("session file = %q, want isAuthenticated stored as literal true", text)
	}
}

func TestFileStore_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("adminToken = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("file", dir)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("Open(file) = %T, want *FileStore", s)
	}

	s, err = Open("", dir)
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := s.(*BoltStore); !ok {
		t.Fatalf("Open(default) = %T, want *BoltStore", s)
	}
	_ = s.Close()

	if _, err := Open("redis", dir); err == nil {
		t.Fatalf("Open(redis) returned nil error, want unknown backend")
	}
}

func TestMemoryStore_CountsWrites(t *testing.T) {
	m := NewMemoryStore()
	_ = m.Save(Session{IsAuthenticated: true, AdminToken: "t"})
	_ = m.Clear()
	if m.Writes() != 2 {
		t.Fatalf("Writes = %d, want 2", m.Writes())
	}
	if _, ok := m.Value(KeyAuthToken); ok {
		t.Fatalf("Clear should drop %s", KeyAuthToken)
	}
}
