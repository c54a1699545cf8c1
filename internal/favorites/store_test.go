package favorites

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mmcdole/flicks/internal/domain"
)

// memKV is an in-memory domain.KeyValueStore with injectable failures
type memKV struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	delErr  error
	setCall int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key string, value []byte) error {
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

// listView mimics a rendered container: ordered keys with front insertion
type listView struct {
	keys []string
}

func (v *listView) Apply(d Delta) {
	switch d.Op {
	case OpInsertFront:
		v.keys = append([]string{d.Key}, v.keys...)
	case OpAppend:
		v.keys = append(v.keys, d.Key)
	case OpRemove:
		for i, k := range v.keys {
			if k == d.Key {
				v.keys = append(v.keys[:i], v.keys[i+1:]...)
				return
			}
		}
	}
}

func storedIDs(t *testing.T, kv *memKV) []int {
	t.Helper()
	c, ok := Decode(kv.data[StorageKey])
	if !ok {
		t.Fatalf("stored favorites do not decode: %q", kv.data[StorageKey])
	}
	out := make([]int, len(c))
	for i, m := range c {
		out[i] = m.ID
	}
	return out
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore_AddPersistsAndRenders(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)
	s.LoadAll()

	if err := s.Add(domain.Movie{ID: 1, Title: "Dune"}); err != nil {
		t.Fatalf("Add(1) error = %v", err)
	}
	if err := s.Add(domain.Movie{ID: 2, Title: "Her"}); err != nil {
		t.Fatalf("Add(2) error = %v", err)
	}

	if got := storedIDs(t, kv); !sameInts(got, []int{2, 1}) {
		t.Errorf("stored = %v, want [2 1]", got)
	}
	if s.Len() != 2 || s.Items()[0].ID != 2 {
		t.Errorf("Items() = %v, want newest first", s.Items())
	}
	if len(view.keys) != 2 || view.keys[0] != "movie-2" || view.keys[1] != "movie-1" {
		t.Errorf("view = %v, want [movie-2 movie-1]", view.keys)
	}
}

func TestStore_DuplicateAddSignalsAndChangesNothing(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)

	dune := domain.Movie{ID: 1, Title: "Dune", Genres: []string{"Sci-Fi"}}
	if err := s.Add(dune); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	writes := kv.setCall
	before := string(kv.data[StorageKey])

	err := s.Add(dune)
	if !errors.Is(err, domain.ErrAlreadyFavorite) {
		t.Fatalf("second Add() error = %v, want ErrAlreadyFavorite", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if kv.setCall != writes || string(kv.data[StorageKey]) != before {
		t.Error("duplicate add wrote to storage")
	}
	if len(view.keys) != 1 {
		t.Errorf("view = %v, want one entry", view.keys)
	}
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)

	for _, id := range []int{1, 2, 3} {
		if err := s.Add(domain.Movie{ID: id}); err != nil {
			t.Fatalf("Add(%d) error = %v", id, err)
		}
	}

	if err := s.Remove(domain.Movie{ID: 2}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if s.Contains(2) {
		t.Error("Contains(2) after remove")
	}
	if got := storedIDs(t, kv); !sameInts(got, []int{3, 1}) {
		t.Errorf("stored = %v, want [3 1]", got)
	}
	if len(view.keys) != 2 || view.keys[0] != "movie-3" || view.keys[1] != "movie-1" {
		t.Errorf("view = %v, want [movie-3 movie-1]", view.keys)
	}
}

func TestStore_RemoveWithoutRenderedEntry(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	kv.data[StorageKey] = []byte(`[{"id":7,"title":"Heat"}]`)

	// Load without a view so nothing is rendered, then attach one
	s := NewStore(kv, nil, nil)
	s.LoadAll()
	view := &listView{keys: []string{"movie-99"}}
	s.SetView(view)

	if err := s.Remove(domain.Movie{ID: 7}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := storedIDs(t, kv); len(got) != 0 {
		t.Errorf("stored = %v, want empty", got)
	}
	if len(view.keys) != 1 || view.keys[0] != "movie-99" {
		t.Errorf("view = %v, unrelated entry should remain", view.keys)
	}
}

func TestStore_LoadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored []byte
		want   []int
	}{
		{"missing key", nil, []int{}},
		{"malformed", []byte("not json"), []int{}},
		{"valid", []byte(`[{"id":3},{"id":1},{"id":2}]`), []int{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kv := newMemKV()
			if tt.stored != nil {
				kv.data[StorageKey] = tt.stored
			}
			view := &listView{}
			s := NewStore(kv, view, nil)

			items := s.LoadAll()
			if len(items) != len(tt.want) {
				t.Fatalf("LoadAll() = %v, want ids %v", items, tt.want)
			}
			for i, id := range tt.want {
				if items[i].ID != id {
					t.Errorf("LoadAll()[%d] = %d, want %d", i, items[i].ID, id)
				}
				if view.keys[i] != domain.ElementID(id) {
					t.Errorf("view[%d] = %s, want %s", i, view.keys[i], domain.ElementID(id))
				}
			}
		})
	}
}

func TestStore_WriteFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)
	if err := s.Add(domain.Movie{ID: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	diskFull := errors.New("disk full")
	kv.setErr = diskFull

	if err := s.Add(domain.Movie{ID: 2}); !errors.Is(err, diskFull) {
		t.Errorf("Add() error = %v, want wrapped disk full", err)
	}
	if err := s.Remove(domain.Movie{ID: 1}); !errors.Is(err, diskFull) {
		t.Errorf("Remove() error = %v, want wrapped disk full", err)
	}

	if s.Len() != 1 || !s.Contains(1) {
		t.Errorf("Items() = %v, want only id 1", s.Items())
	}
	if len(view.keys) != 1 || view.keys[0] != "movie-1" {
		t.Errorf("view = %v, want [movie-1]", view.keys)
	}
}

func TestStore_ItemsIsACopy(t *testing.T) {
	t.Parallel()

	s := NewStore(newMemKV(), nil, nil)
	if err := s.Add(domain.Movie{ID: 1, Title: "Dune"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	items := s.Items()
	items[0].Title = "changed"

	if m, _ := s.Find(1); m.Title != "Dune" {
		t.Errorf("Find(1).Title = %q, store mutated through Items()", m.Title)
	}
}

func TestStore_GenresAreNotShared(t *testing.T) {
	t.Parallel()

	s := NewStore(newMemKV(), nil, nil)
	added := domain.Movie{ID: 1, Title: "Dune", Genres: []string{"Sci-Fi"}}
	if err := s.Add(added); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	added.Genres[0] = "Drama"
	s.Items()[0].Genres[0] = "Horror"
	found, _ := s.Find(1)
	found.Genres[0] = "Comedy"

	if got := s.Items()[0].Genres; len(got) != 1 || got[0] != "Sci-Fi" {
		t.Errorf("Genres = %v, want [Sci-Fi]", got)
	}
}

func TestStore_LoadAllReadFailureStartsEmpty(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	kv.data[StorageKey] = []byte(`[{"id":1}]`)
	kv.getErr = errors.New("io error")

	var logged bytes.Buffer
	view := &listView{}
	s := NewStore(kv, view, slog.New(slog.NewJSONHandler(&logged, nil)))

	if items := s.LoadAll(); len(items) != 0 {
		t.Errorf("LoadAll() = %v, want empty", items)
	}
	if len(view.keys) != 0 {
		t.Errorf("view = %v, want empty", view.keys)
	}
	if !strings.Contains(logged.String(), "io error") {
		t.Errorf("read failure not logged: %s", logged.String())
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)
	for _, id := range []int{1, 2, 3} {
		if err := s.Add(domain.Movie{ID: id}); err != nil {
			t.Fatalf("Add(%d) error = %v", id, err)
		}
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if len(view.keys) != 0 {
		t.Errorf("view = %v, want empty", view.keys)
	}
	if _, ok := kv.data[StorageKey]; ok {
		t.Error("stored value still present after Clear")
	}

	// A fresh store over the same storage starts empty
	if got := NewStore(kv, nil, nil).LoadAll(); len(got) != 0 {
		t.Errorf("LoadAll() after Clear = %v, want empty", got)
	}
}

func TestStore_ClearFailureKeepsFavorites(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	view := &listView{}
	s := NewStore(kv, view, nil)
	if err := s.Add(domain.Movie{ID: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	locked := errors.New("locked")
	kv.delErr = locked
	if err := s.Clear(); !errors.Is(err, locked) {
		t.Errorf("Clear() error = %v, want wrapped locked", err)
	}
	if s.Len() != 1 || len(view.keys) != 1 {
		t.Errorf("state changed after failed Clear: items %v, view %v", s.Items(), view.keys)
	}
}

func TestStore_ScenarioDuneTwice(t *testing.T) {
	t.Parallel()

	s := NewStore(newMemKV(), nil, nil)
	dune := domain.Movie{ID: 1, Title: "Dune", Genres: []string{"Sci-Fi"}}

	if err := s.Add(dune); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	if err := s.Add(dune); !errors.Is(err, domain.ErrAlreadyFavorite) {
		t.Fatalf("second Add() error = %v, want ErrAlreadyFavorite", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestViewFunc(t *testing.T) {
	t.Parallel()

	var got []Op
	s := NewStore(newMemKV(), ViewFunc(func(d Delta) { got = append(got, d.Op) }), nil)
	_ = s.Add(domain.Movie{ID: 1})
	_ = s.Remove(domain.Movie{ID: 1})

	if len(got) != 2 || got[0] != OpInsertFront || got[1] != OpRemove {
		t.Errorf("ops = %v, want [insert-front remove]", got)
	}
}
