package app

import (
	"context"
	"errors"
	"fmt"

	"staybook/internal/catalog"
	"staybook/internal/domain"
)

// FavoriteService manages a user's saved hotels. Favorites are append-only
// snapshots: create, list, delete — no update semantics.
type FavoriteService struct {
	cat   *catalog.Catalog
	store domain.FavoriteStore
}

func NewFavoriteService(cat *catalog.Catalog, store domain.FavoriteStore) *FavoriteService {
	return &FavoriteService{cat: cat, store: store}
}

func (s *FavoriteService) Add(ctx context.Context, userID, hotelID string) (domain.Favorite, error) {
	if userID == "" {
		return domain.Favorite{}, domain.ErrAuthRequired
	}
	h, err := s.cat.Get(hotelID)
	if err != nil {
		return domain.Favorite{}, err
	}
	f := domain.Favorite{
		UserID:  userID,
		HotelID: h.ID,
		Hotel:   domain.Snapshot(h),
	}
	id, err := s.store.Insert(ctx, &f)
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("%w: insert favorite: %w", domain.ErrPersistence, err)
	}
	f.ID = id
	return f, nil
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	fs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list favorites: %w", domain.ErrPersistence, err)
	}
	if fs == nil {
		fs = []domain.Favorite{}
	}
	return fs, nil
}

// Remove deletes one favorite after checking the caller owns it.
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID string) error {
	f, err := s.store.Get(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: get favorite: %w", domain.ErrPersistence, err)
	}
	if f.UserID != userID {
		return domain.ErrNotFound
	}
	if err := s.store.Delete(ctx, favoriteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: delete favorite: %w", domain.ErrPersistence, err)
	}
	return nil
}
