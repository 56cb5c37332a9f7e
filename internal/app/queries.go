package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"staybook/internal/catalog"
	"staybook/internal/domain"
)

// QueryService serves catalog reads. Hotel details go through the cache
// (room types and reviews are derived per read, so only the assembled view is
// cached, with a TTL and no invalidation paths).
type QueryService struct {
	cat      *catalog.Catalog
	cache    domain.Cache
	history  domain.HistoryStore
	cacheTTL time.Duration
}

func NewQueryService(c *catalog.Catalog, cache domain.Cache, history domain.HistoryStore, ttl time.Duration) *QueryService {
	return &QueryService{cat: c, cache: cache, history: history, cacheTTL: ttl}
}

func (s *QueryService) HotelDetails(ctx context.Context, id string) (domain.HotelDetails, error) {
	key := fmt.Sprintf("hotel:%s", id)
	var hd domain.HotelDetails
	if ok, _ := s.cache.Get(ctx, key, &hd); ok {
		return hd, nil
	}
	hd, err := s.cat.Details(id)
	if err != nil {
		return domain.HotelDetails{}, err
	}
	_ = s.cache.Set(ctx, key, hd, int(s.cacheTTL.Seconds()))
	return hd, nil
}

// Search filters the catalog. When userID is non-empty the criteria are
// logged to the user's search history; a history write failure never fails
// the search itself.
func (s *QueryService) Search(ctx context.Context, cr domain.SearchCriteria, userID string) ([]domain.Hotel, error) {
	hotels, err := s.cat.Search(cr)
	if err != nil {
		return nil, err
	}
	if userID != "" && s.history != nil {
		rec := domain.SearchRecord{
			UserID:   userID,
			Location: cr.Location,
			CheckIn:  cr.CheckIn,
			CheckOut: cr.CheckOut,
			Guests:   cr.Guests,
		}
		if _, herr := s.history.Insert(ctx, &rec); herr != nil {
			log.Warn().Err(herr).Str("user", userID).Msg("search history write failed")
		}
	}
	return hotels, nil
}
