package catalog

import (
	"strings"

	"staybook/internal/domain"
)

// Catalog holds the static reference set of hotels. Read-only after New, so
// it is safe for unlimited concurrent readers.
type Catalog struct {
	hotels []domain.Hotel
	byID   map[string]int
}

func New() *Catalog {
	return newWith(referenceHotels)
}

func newWith(hotels []domain.Hotel) *Catalog {
	c := &Catalog{hotels: hotels, byID: make(map[string]int, len(hotels))}
	for i, h := range hotels {
		c.byID[h.ID] = i
	}
	return c
}

// All returns the catalog in reference order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []domain.Hotel {
	out := make([]domain.Hotel, len(c.hotels))
	copy(out, c.hotels)
	return out
}

func (c *Catalog) Get(id string) (domain.Hotel, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return c.hotels[i], nil
}

// Search filters the catalog by the given criteria. Location matches
// case-insensitively as a substring against city and country; empty location
// matches everything. Price and rating bounds are inclusive. Filtering is
// pure and order-preserving; the full filtered set is returned.
func (c *Catalog) Search(cr domain.SearchCriteria) ([]domain.Hotel, error) {
	if err := validateCriteria(cr); err != nil {
		return nil, err
	}
	loc := strings.ToLower(strings.TrimSpace(cr.Location))
	out := make([]domain.Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		if loc != "" &&
			!strings.Contains(strings.ToLower(h.City), loc) &&
			!strings.Contains(strings.ToLower(h.Country), loc) {
			continue
		}
		if cr.MinPrice != nil && h.Price < *cr.MinPrice {
			continue
		}
		if cr.MaxPrice != nil && h.Price > *cr.MaxPrice {
			continue
		}
		if cr.MinRating != nil && h.Rating < *cr.MinRating {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func validateCriteria(cr domain.SearchCriteria) error {
	if cr.Guests < 0 {
		return domain.ErrInvalidCriteria
	}
	if cr.MinPrice != nil && *cr.MinPrice < 0 {
		return domain.ErrInvalidCriteria
	}
	if cr.MaxPrice != nil && *cr.MaxPrice < 0 {
		return domain.ErrInvalidCriteria
	}
	if cr.MinPrice != nil && cr.MaxPrice != nil && *cr.MinPrice > *cr.MaxPrice {
		return domain.ErrInvalidCriteria
	}
	if cr.MinRating != nil && (*cr.MinRating < 0 || *cr.MinRating > 5) {
		return domain.ErrInvalidCriteria
	}
	return nil
}
