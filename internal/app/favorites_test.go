package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"staybook/internal/app"
	"staybook/internal/catalog"
	"staybook/internal/domain"
)

type fakeFavoriteStore struct {
	docs    map[string]domain.Favorite
	inserts int
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{docs: map[string]domain.Favorite{}}
}

func (f *fakeFavoriteStore) Insert(ctx context.Context, fav *domain.Favorite) (string, error) {
	f.inserts++
	id := fmt.Sprintf("fav-%d", f.inserts)
	fav.AddedAt = time.Now().UTC()
	cp := *fav
	cp.ID = id
	f.docs[id] = cp
	return id, nil
}

func (f *fakeFavoriteStore) Get(ctx context.Context, id string) (domain.Favorite, error) {
	fav, ok := f.docs[id]
	if !ok {
		return domain.Favorite{}, domain.ErrNotFound
	}
	return fav, nil
}

func (f *fakeFavoriteStore) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, fav := range f.docs {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeFavoriteStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func TestFavorites_AddSnapshotsTheHotel(t *testing.T) {
	svc := app.NewFavoriteService(catalog.New(), newFakeFavoriteStore())

	f, err := svc.Add(context.Background(), "user-1", "hotel-3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if f.ID == "" || f.HotelID != "hotel-3" {
		t.Fatalf("favorite: %+v", f)
	}
	if f.Hotel.Name == "" || f.Hotel.Price != 15000 {
		t.Fatalf("snapshot: %+v", f.Hotel)
	}
}

func TestFavorites_AddUnknownHotel(t *testing.T) {
	svc := app.NewFavoriteService(catalog.New(), newFakeFavoriteStore())
	_, err := svc.Add(context.Background(), "user-1", "hotel-404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFavorites_RemoveChecksOwnership(t *testing.T) {
	store := newFakeFavoriteStore()
	svc := app.NewFavoriteService(catalog.New(), store)

	f, err := svc.Add(context.Background(), "owner", "hotel-1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(context.Background(), "intruder", f.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, ok := store.docs[f.ID]; !ok {
		t.Fatal("favorite deleted by non-owner")
	}

	if err := svc.Remove(context.Background(), "owner", f.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(context.Background(), "owner", f.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second remove: got %v, want ErrNotFound", err)
	}
}

func TestFavorites_ListEmpty(t *testing.T) {
	svc := app.NewFavoriteService(catalog.New(), newFakeFavoriteStore())
	fs, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if fs == nil || len(fs) != 0 {
		t.Fatalf("want empty slice, got %v", fs)
	}
}
