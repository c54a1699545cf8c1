package filter

import (
	"testing"

	"github.com/mmcdole/flicks/internal/domain"
)

func testCatalog() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Dune", Genres: []string{"Sci-Fi"}},
		{ID: 2, Title: "Her", Genres: []string{"Drama", "Sci-Fi"}},
		{ID: 3, Title: "Last Action Hero", Genres: []string{"Comedy"}},
		{ID: 4, Title: "Mad Max: Fury Road", Genres: []string{" ACTION ", "Adventure"}},
		{ID: 5, Title: "Paddington", Genres: []string{"Family"}},
	}
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
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

func TestMovies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty query returns full catalog", "", []int{1, 2, 3, 4, 5}},
		{"whitespace query returns full catalog", "   ", []int{1, 2, 3, 4, 5}},
		{"genre match keeps catalog order", "sci-fi", []int{1, 2}},
		{"case and whitespace insensitive", "  AcTioN  ", []int{3, 4}},
		{"title substring", "dd", []int{5}},
		{"genre requires exact token", "sci", []int{}},
		{"genre substring does not match", "adventur", []int{}},
		{"no match", "zzz", []int{}},
		{"title substring in middle", "fury", []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Movies(testCatalog(), tt.query)
			if got == nil {
				t.Fatal("Movies() returned nil, want non-nil slice")
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Movies(%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
		})
	}
}

func TestMovies_EmptyCatalog(t *testing.T) {
	t.Parallel()

	got := Movies(nil, "anything")
	if got == nil || len(got) != 0 {
		t.Errorf("Movies(nil) = %v, want empty non-nil slice", got)
	}
}

func TestMovies_DoesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	got := Movies(catalog, "")
	got[0].Title = "changed"

	if catalog[0].Title != "Dune" {
		t.Errorf("catalog mutated through result: %q", catalog[0].Title)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Sci-Fi ": "sci-fi",
		"DRAMA":     "drama",
		"\tHer\n":   "her",
		"":          "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	got := Suggest(testCatalog(), "Dnue", 3)
	if len(got) == 0 || got[0] != "Dune" {
		t.Errorf("Suggest(Dnue) = %v, want Dune first", got)
	}

	if got := Suggest(testCatalog(), "", 3); got != nil {
		t.Errorf("Suggest(empty) = %v, want nil", got)
	}

	if got := Suggest(testCatalog(), "xqzvw", 3); len(got) != 0 {
		t.Errorf("Suggest(xqzvw) = %v, want none", got)
	}

	if got := Suggest(testCatalog(), "her", 0); got != nil {
		t.Errorf("Suggest(limit 0) = %v, want nil", got)
	}
}

func TestSuggest_RespectsLimit(t *testing.T) {
	t.Parallel()

	catalog := []domain.Movie{
		{ID: 1, Title: "Cat"},
		{ID: 2, Title: "Car"},
		{ID: 3, Title: "Cab"},
	}
	got := Suggest(catalog, "cas", 2)
	if len(got) != 2 {
		t.Fatalf("Suggest() returned %d titles, want 2", len(got))
	}
	if got[0] != "Cat" || got[1] != "Car" {
		t.Errorf("Suggest() = %v, want ties in catalog order [Cat Car]", got)
	}
}
