package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"staybook/internal/catalog"
	"staybook/internal/domain"
)

// BookingService drives the booking lifecycle: confirmed at creation, then
// cancelled (user-initiated) or completed (reserved, no trigger here).
// Callers authenticate via the identity gateway; this service only scopes
// operations by the uid it is handed.
type BookingService struct {
	cat   *catalog.Catalog
	store domain.BookingStore
}

func NewBookingService(cat *catalog.Catalog, store domain.BookingStore) *BookingService {
	return &BookingService{cat: cat, store: store}
}

// CreateInput carries the caller's booking request. Price and currency are
// deliberately absent: totals are recomputed from the catalog snapshot, never
// trusted from the client.
type CreateInput struct {
	HotelID    string
	RoomTypeID string // optional; empty books the hotel base rate
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

func (s *BookingService) Create(ctx context.Context, userID string, in CreateInput) (domain.Booking, error) {
	if userID == "" {
		return domain.Booking{}, domain.ErrAuthRequired
	}
	if in.Guests < 1 {
		return domain.Booking{}, fmt.Errorf("%w: guests must be at least 1", domain.ErrInvalidRange)
	}
	// Range check happens before any store write.
	nights, err := catalog.Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}

	h, err := s.cat.Get(in.HotelID)
	if err != nil {
		return domain.Booking{}, err
	}

	b := domain.Booking{
		UserID:   userID,
		HotelID:  h.ID,
		Hotel:    domain.Snapshot(h),
		CheckIn:  in.CheckIn,
		CheckOut: in.CheckOut,
		Guests:   in.Guests,
		Currency: h.Currency,
		Status:   domain.StatusConfirmed,
	}

	perNight := h.Price
	if in.RoomTypeID != "" {
		rt, err := s.cat.RoomTypeFor(in.HotelID, in.RoomTypeID)
		if err != nil {
			return domain.Booking{}, err
		}
		snap := domain.SnapshotRoom(rt)
		b.Room = &snap
		perNight = rt.Price
	}
	b.TotalPrice = catalog.TotalCost(perNight, nights)

	id, err := s.store.Insert(ctx, &b)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: insert booking: %w", domain.ErrPersistence, err)
	}
	b.ID = id

	log.Info().
		Str("booking", b.ID).
		Str("user", userID).
		Str("hotel", h.ID).
		Int("nights", nights).
		Float64("total", b.TotalPrice).
		Msg("booking created")
	return b, nil
}

// List returns the user's bookings newest first. No bookings is an empty
// slice, not an error.
func (s *BookingService) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	bs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", domain.ErrPersistence, err)
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	return bs, nil
}

// Get returns one booking, hiding other users' bookings behind ErrNotFound.
func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (domain.Booking, error) {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("%w: get booking: %w", domain.ErrPersistence, err)
	}
	if b.UserID != userID {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

// Cancel transitions a booking to cancelled. The transition is an
// unconditional overwrite: cancelling an already-cancelled booking succeeds
// and leaves the status cancelled. Bookings are never deleted.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	if _, err := s.Get(ctx, userID, bookingID); err != nil {
		return err
	}
	if err := s.store.SetStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: cancel booking: %w", domain.ErrPersistence, err)
	}
	log.Info().Str("booking", bookingID).Str("user", userID).Msg("booking cancelled")
	return nil
}
