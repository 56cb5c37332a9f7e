package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "staybook/internal/adapters/http_server"
	"staybook/internal/adapters/identity"
	"staybook/internal/adapters/observability"
	redisad "staybook/internal/adapters/redis"
	"staybook/internal/app"
	"staybook/internal/catalog"
	"staybook/internal/shared"
	mongostore "staybook/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	db, closeDB, err := mongostore.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer closeDB()
	log.Info().Msg("document store connection ok")

	store := mongostore.New(db, cfg.MongoReadTimeout, cfg.MongoWriteTimeout)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cat := catalog.New()

	idp, err := identity.New(cfg.IdentityBase, cfg.IdentityKey, cfg.IdentityRPS, store.Users())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize identity client")
	}
	events := identity.NewEvents()
	events.Subscribe(func(ev identity.Event) {
		log.Info().Str("kind", string(ev.Kind)).Str("uid", ev.Session.UID).Msg("session event")
	})

	q := app.NewQueryService(cat, cache, store.History(), cfg.CacheTTL)
	bookings := app.NewBookingService(cat, store.Bookings())
	favorites := app.NewFavoriteService(cat, store.Favorites())
	profile := app.NewProfileService(store.Users(), bookings, favorites, store.History())

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:         q,
		Bookings:  bookings,
		Favorites: favorites,
		Profile:   profile,
		History:   store.History(),
		Identity:  idp,
		Sessions:  events,
	}, idp)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
