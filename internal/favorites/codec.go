package favorites

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mmcdole/flicks/internal/domain"
)

// Encode serializes the full collection. An empty collection encodes as "[]".
func Encode(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal([]domain.Movie(c))
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection. Missing or malformed data yields an
// empty collection and ok=false; callers treat both as "no favorites yet".
// Duplicate IDs from a hand-edited value are dropped, keeping the first.
func Decode(data []byte) (c Collection, ok bool) {
	if len(data) == 0 {
		return Collection{}, false
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return Collection{}, false
	}
	if movies == nil {
		// JSON null
		return Collection{}, false
	}

	c = make(Collection, 0, len(movies))
	for _, m := range movies {
		if !c.Contains(m.ID) {
			c = append(c, m)
		}
	}
	return c, true
}
