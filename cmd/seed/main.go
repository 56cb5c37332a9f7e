// Command seed populates the document store with demo users, bookings and
// favorites for local development. It writes through the same store layer as
// the API, so server-assigned ids and timestamps behave identically.
package main

import (
	"context"
	"flag"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staybook/internal/adapters/observability"
	"staybook/internal/app"
	"staybook/internal/catalog"
	"staybook/internal/domain"
	"staybook/internal/shared"
	mongostore "staybook/internal/storage/mongo"
)

func main() {
	users := flag.Int("users", 3, "demo users to create")
	workers := flag.Int("workers", 4, "concurrent seed workers")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, closeDB, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer closeDB()

	store := mongostore.New(db, cfg.MongoReadTimeout, cfg.MongoWriteTimeout)
	cat := catalog.New()
	bookings := app.NewBookingService(cat, store.Bookings())
	favorites := app.NewFavoriteService(cat, store.Favorites())

	hotels := cat.All()
	sem := semaphore.NewWeighted(int64(*workers))
	var wg sync.WaitGroup

	for i := 0; i < *users; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer sem.Release(1)

			uid := "demo-" + uuid.NewString()
			u := domain.User{UID: uid, Email: uuid.NewString()[:8] + "@example.com", DisplayName: "Demo User"}
			if err := store.Users().Upsert(ctx, u); err != nil {
				log.Warn().Err(err).Str("uid", uid).Msg("seed user failed")
				return
			}

			h := hotels[n%len(hotels)]
			checkIn := time.Now().AddDate(0, 0, 7+n).Truncate(24 * time.Hour)
			if _, err := bookings.Create(ctx, uid, app.CreateInput{
				HotelID:  h.ID,
				CheckIn:  checkIn,
				CheckOut: checkIn.AddDate(0, 0, 2),
				Guests:   2,
			}); err != nil {
				log.Warn().Err(err).Str("uid", uid).Msg("seed booking failed")
				return
			}
			if _, err := favorites.Add(ctx, uid, h.ID); err != nil {
				log.Warn().Err(err).Str("uid", uid).Msg("seed favorite failed")
				return
			}
			log.Info().Str("uid", uid).Str("hotel", h.ID).Msg("seeded demo user")
		}(i)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
