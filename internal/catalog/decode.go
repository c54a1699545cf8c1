package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/mmcdole/flicks/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Decode parses a catalog payload: a JSON array of movies with unique IDs
func Decode(data []byte) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogInvalid, err)
	}
	if movies == nil {
		return nil, fmt.Errorf("%w: payload is not an array", domain.ErrCatalogInvalid)
	}

	if err := getValidator().Var(movies, "unique=ID"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: movie ids are not unique", domain.ErrCatalogInvalid)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogInvalid, err)
	}

	return movies, nil
}
