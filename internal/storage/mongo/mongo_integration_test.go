//go:build integration || !unit

package mongostore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain"
	mongostore "staybook/internal/storage/mongo"
)

// startMongo runs an isolated mongo container; Docker picks a free host port.
func startMongo(t *testing.T) *mongo.Database {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var e error
		client, e = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if e != nil {
			return e
		}
		return client.Ping(ctx, nil)
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("staybook_test")
}

func sampleBooking(userID string) domain.Booking {
	return domain.Booking{
		UserID:  userID,
		HotelID: "hotel-1",
		Hotel: domain.HotelSnapshot{
			Version:  domain.SnapshotVersion,
			HotelID:  "hotel-1",
			Name:     "グランドホテル東京",
			City:     "東京",
			Country:  "日本",
			Price:    25000,
			Currency: "JPY",
		},
		CheckIn:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 50000,
		Currency:   "JPY",
		Status:     domain.StatusCancelled, // must be ignored by Insert
	}
}

func TestStore_Mongo(t *testing.T) {
	db := startMongo(t)
	store := mongostore.New(db, 5*time.Second, 5*time.Second)
	ctx := context.Background()

	t.Run("bookings", func(t *testing.T) {
		bs := store.Bookings()

		b := sampleBooking("u1")
		id, err := bs.Insert(ctx, &b)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if b.Status != domain.StatusConfirmed {
			t.Fatalf("insert must force confirmed, got %s", b.Status)
		}
		if b.CreatedAt.IsZero() {
			t.Fatal("insert must assign createdAt")
		}

		got, err := bs.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Hotel.Name != b.Hotel.Name || got.TotalPrice != 50000 || got.Status != domain.StatusConfirmed {
			t.Fatalf("round trip: %+v", got)
		}
		if !got.CreatedAt.Equal(b.CreatedAt) {
			t.Fatalf("createdAt: stored %v, got %v", b.CreatedAt, got.CreatedAt)
		}

		second := sampleBooking("u1")
		id2, err := bs.Insert(ctx, &second)
		if err != nil {
			t.Fatalf("insert second: %v", err)
		}

		list, err := bs.ListByUser(ctx, "u1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("list: %d bookings", len(list))
		}
		if list[0].ID != id2 || list[1].ID != id {
			t.Fatalf("list order: %s, %s (want newest first)", list[0].ID, list[1].ID)
		}

		other, err := bs.ListByUser(ctx, "u-none")
		if err != nil {
			t.Fatalf("list empty: %v", err)
		}
		if len(other) != 0 {
			t.Fatalf("list empty: %d bookings", len(other))
		}

		if err := bs.SetStatus(ctx, id, domain.StatusCancelled); err != nil {
			t.Fatalf("set status: %v", err)
		}
		got, _ = bs.Get(ctx, id)
		if got.Status != domain.StatusCancelled {
			t.Fatalf("status: %s", got.Status)
		}

		if err := bs.SetStatus(ctx, "65f000000000000000000000", domain.StatusCancelled); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("set status missing: %v", err)
		}
		if _, err := bs.Get(ctx, "not-a-hex-id"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("get malformed id: %v", err)
		}
	})

	t.Run("favorites", func(t *testing.T) {
		fs := store.Favorites()

		f := domain.Favorite{UserID: "u1", HotelID: "hotel-2", Hotel: domain.HotelSnapshot{HotelID: "hotel-2", Name: "京都旅館 雅"}}
		id, err := fs.Insert(ctx, &f)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if f.AddedAt.IsZero() {
			t.Fatal("insert must assign addedAt")
		}

		got, err := fs.Get(ctx, id)
		if err != nil || got.Hotel.Name != "京都旅館 雅" {
			t.Fatalf("get: %+v, %v", got, err)
		}

		list, err := fs.ListByUser(ctx, "u1")
		if err != nil || len(list) != 1 {
			t.Fatalf("list: %v, %v", list, err)
		}

		if err := fs.Delete(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := fs.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("second delete: %v", err)
		}
	})

	t.Run("history", func(t *testing.T) {
		hs := store.History()

		for _, loc := range []string{"東京", "大阪"} {
			if _, err := hs.Insert(ctx, &domain.SearchRecord{UserID: "u1", Location: loc, Guests: 2}); err != nil {
				t.Fatalf("insert %s: %v", loc, err)
			}
		}

		list, err := hs.ListByUser(ctx, "u1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("list: %d records", len(list))
		}
		if list[0].SearchedAt.Before(list[1].SearchedAt) {
			t.Fatal("expected newest first")
		}
	})

	t.Run("users", func(t *testing.T) {
		us := store.Users()

		if err := us.Upsert(ctx, domain.User{UID: "u1", Email: "u1@example.com", DisplayName: "U One"}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		first, err := us.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if first.CreatedAt.IsZero() {
			t.Fatal("upsert must assign created_at on insert")
		}

		if err := us.Upsert(ctx, domain.User{UID: "u1", Email: "u1@example.com", DisplayName: "Renamed"}); err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		second, err := us.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if second.DisplayName != "Renamed" {
			t.Fatalf("display name: %s", second.DisplayName)
		}
		if !second.CreatedAt.Equal(first.CreatedAt) {
			t.Fatalf("created_at must survive upserts: %v vs %v", first.CreatedAt, second.CreatedAt)
		}

		if _, err := us.Get(ctx, "u-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("get missing: %v", err)
		}
	})
}
