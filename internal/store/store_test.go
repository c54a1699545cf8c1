package store

import (
	"path/filepath"
	"testing"
)

func TestLocalStore_SetGetPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := NewLocalStore(dir, "./movies.json")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	if err := s.Set("favorites", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewLocalStore(dir, "./movies.json")
	if err != nil {
		t.Fatalf("NewLocalStore() reopen error = %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get("favorites")
	if err != nil || !ok {
		t.Fatalf("Get() after reopen = %v, %v; want key present", ok, err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Get() = %s, want %s", got, `[{"id":1}]`)
	}
}

func TestLocalStore_MissingKey(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), "origin")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	defer s.Close()

	if v, ok, err := s.Get("favorites"); ok || err != nil {
		t.Errorf("Get() on empty store = %q, %v, %v; want missing", v, ok, err)
	}
}

func TestLocalStore_OriginsAreIsolated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	a, err := NewLocalStore(dir, "https://a.example/movies.json")
	if err != nil {
		t.Fatalf("NewLocalStore(a) error = %v", err)
	}
	defer a.Close()
	b, err := NewLocalStore(dir, "https://b.example/movies.json")
	if err != nil {
		t.Fatalf("NewLocalStore(b) error = %v", err)
	}
	defer b.Close()

	if err := a.Set("favorites", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := b.Get("favorites"); ok {
		t.Error("origin b sees a key written by origin a")
	}
	if filepath.Dir(a.Path()) == filepath.Dir(b.Path()) {
		t.Errorf("both origins share directory %s", filepath.Dir(a.Path()))
	}
}

func TestHashOrigin_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
	}{
		{"https://Example.com/", "https://example.com"},
		{"./movies.json", "./MOVIES.JSON"},
	}

	for _, tt := range tests {
		if hashOrigin(tt.a) != hashOrigin(tt.b) {
			t.Errorf("hashOrigin(%q) != hashOrigin(%q)", tt.a, tt.b)
		}
	}
}

func TestLocalStore_ReturnedBytesAreCopies(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore("", "")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	in := []byte("abc")
	if err := s.Set("k", in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	in[0] = 'z'

	got, _, _ := s.Get("k")
	got[1] = 'z'

	again, _, _ := s.Get("k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through caller slices: %q", again)
	}
}

func TestLocalStore_Delete(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{"", t.TempDir()} {
		s, err := NewLocalStore(dir, "origin")
		if err != nil {
			t.Fatalf("NewLocalStore(%q) error = %v", dir, err)
		}

		for _, k := range []string{"a", "b"} {
			if err := s.Set(k, []byte(k)); err != nil {
				t.Fatalf("Set(%q) error = %v", k, err)
			}
		}

		if err := s.Delete("b"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := s.Delete("missing"); err != nil {
			t.Errorf("Delete(missing) error = %v, want nil", err)
		}
		if _, ok, _ := s.Get("b"); ok {
			t.Errorf("Get(b) after Delete found the key (dir %q)", dir)
		}
		if v, ok, _ := s.Get("a"); !ok || string(v) != "a" {
			t.Errorf("Get(a) = %q, %v; want a, true", v, ok)
		}
		s.Close()
	}
}

func TestLocalStore_DeletePersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewLocalStore(dir, "origin")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	if err := s.Set("favorites", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	s.Close()

	reopened, err := NewLocalStore(dir, "origin")
	if err != nil {
		t.Fatalf("NewLocalStore() reopen error = %v", err)
	}
	defer reopened.Close()
	if _, ok, _ := reopened.Get("favorites"); ok {
		t.Error("deleted key is back after reopen")
	}
}

func TestLocalStore_ReadFailureIsReported(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), "origin")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Nothing cached, so the read goes to the closed bolt file
	v, ok, err := s.Get("favorites")
	if err == nil {
		t.Fatalf("Get() on closed store = %q, %v, nil; want error", v, ok)
	}
	if ok {
		t.Error("Get() reported found alongside a read error")
	}
}
