package domain

import "context"

// BookingStore is the persistence gateway for booking documents. The store is
// the sole mutator: it assigns ids and createdAt timestamps. Bookings are
// never deleted, only transitioned.
type BookingStore interface {
	Insert(ctx context.Context, b *Booking) (string, error)
	Get(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error) // createdAt desc
	SetStatus(ctx context.Context, id string, status BookingStatus) error
}

type FavoriteStore interface {
	Insert(ctx context.Context, f *Favorite) (string, error)
	Get(ctx context.Context, id string) (Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error) // addedAt desc
	Delete(ctx context.Context, id string) error
}

type HistoryStore interface {
	Insert(ctx context.Context, r *SearchRecord) (string, error)
	ListByUser(ctx context.Context, userID string) ([]SearchRecord, error) // searchedAt desc
}

type UserStore interface {
	Upsert(ctx context.Context, u User) error
	Get(ctx context.Context, uid string) (User, error)
}

// IdentityProvider is the external identity gateway. Credentials never touch
// this codebase beyond pass-through.
type IdentityProvider interface {
	Register(ctx context.Context, email, password, displayName string) (Session, string, error)
	Login(ctx context.Context, email, password string) (Session, string, error)
	LoginWithProvider(ctx context.Context, provider, idToken string) (Session, string, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (Session, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
