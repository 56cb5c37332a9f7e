package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"staybook/internal/domain"
)

// ProfileOverview is everything the profile page shows for one user.
type ProfileOverview struct {
	User      domain.User
	Bookings  []domain.Booking
	Favorites []domain.Favorite
	History   []domain.SearchRecord
}

// ProfileService fans out the independent per-user reads concurrently.
type ProfileService struct {
	users     domain.UserStore
	bookings  *BookingService
	favorites *FavoriteService
	history   domain.HistoryStore
}

func NewProfileService(users domain.UserStore, b *BookingService, f *FavoriteService, h domain.HistoryStore) *ProfileService {
	return &ProfileService{users: users, bookings: b, favorites: f, history: h}
}

func (s *ProfileService) Overview(ctx context.Context, sess domain.Session) (ProfileOverview, error) {
	var out ProfileOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.Get(gctx, sess.UID)
		if errors.Is(err, domain.ErrNotFound) {
			// Profile document may lag behind the identity provider
			// (external-provider logins); fall back to session data.
			out.User = domain.User{UID: sess.UID, Email: sess.Email, DisplayName: sess.DisplayName}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: get user: %w", domain.ErrPersistence, err)
		}
		out.User = u
		return nil
	})
	g.Go(func() error {
		bs, err := s.bookings.List(gctx, sess.UID)
		if err != nil {
			return err
		}
		out.Bookings = bs
		return nil
	})
	g.Go(func() error {
		fs, err := s.favorites.List(gctx, sess.UID)
		if err != nil {
			return err
		}
		out.Favorites = fs
		return nil
	})
	g.Go(func() error {
		hs, err := s.history.ListByUser(gctx, sess.UID)
		if err != nil {
			return fmt.Errorf("%w: list history: %w", domain.ErrPersistence, err)
		}
		if hs == nil {
			hs = []domain.SearchRecord{}
		}
		out.History = hs
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProfileOverview{}, err
	}
	return out, nil
}
