package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/adapters/observability"
	"staybook/internal/domain"
)

const (
	colBookings  = "bookings"
	colFavorites = "favorites"
	colHistory   = "searchHistory"
	colUsers     = "users"
)

// Store is the document-store gateway. It is the sole mutator of booking,
// favorite, search-history and user documents: ids and creation timestamps
// are assigned here, never by callers.
type Store struct {
	db           *mongo.Database
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func New(db *mongo.Database, readTimeout, writeTimeout time.Duration) *Store {
	return &Store{db: db, readTimeout: readTimeout, writeTimeout: writeTimeout}
}

// Connect dials mongo and pings the primary before returning a database
// handle.
func Connect(ctx context.Context, uri, dbName string, connTimeout time.Duration) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	return client.Database(dbName), closeFn, nil
}

func (s *Store) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

// ---- bookings ----

// bookingDoc keeps the _id as an ObjectID inside mongo while the domain type
// carries a plain string.
type bookingDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	UserID     string               `bson:"user_id"`
	HotelID    string               `bson:"hotel_id"`
	Hotel      domain.HotelSnapshot `bson:"hotel"`
	Room       *domain.RoomSnapshot `bson:"room,omitempty"`
	CheckIn    time.Time            `bson:"check_in"`
	CheckOut   time.Time            `bson:"check_out"`
	Guests     int                  `bson:"guests"`
	TotalPrice float64              `bson:"total_price"`
	Currency   string               `bson:"currency"`
	Status     string               `bson:"status"`
	CreatedAt  time.Time            `bson:"created_at"`
}

func (d bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		HotelID:    d.HotelID,
		Hotel:      d.Hotel,
		Room:       d.Room,
		CheckIn:    d.CheckIn,
		CheckOut:   d.CheckOut,
		Guests:     d.Guests,
		TotalPrice: d.TotalPrice,
		Currency:   d.Currency,
		Status:     domain.BookingStatus(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

func (s *Store) Bookings() *BookingStore { return &BookingStore{s} }

type BookingStore struct{ *Store }

func (s *BookingStore) Insert(ctx context.Context, b *domain.Booking) (string, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := bookingDoc{
		UserID:     b.UserID,
		HotelID:    b.HotelID,
		Hotel:      b.Hotel,
		Room:       b.Room,
		CheckIn:    b.CheckIn.UTC(),
		CheckOut:   b.CheckOut.UTC(),
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Currency:   b.Currency,
		Status:     string(domain.StatusConfirmed), // forced, caller status is ignored
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	res, err := s.db.Collection(colBookings).InsertOne(ctx, doc)
	if err != nil {
		observability.ObserveStore(colBookings, "insert", "error")
		return "", fmt.Errorf("insert booking: %w", err)
	}
	observability.ObserveStore(colBookings, "insert", "ok")
	oid := res.InsertedID.(primitive.ObjectID)
	b.Status = domain.StatusConfirmed
	b.CreatedAt = doc.CreatedAt
	return oid.Hex(), nil
}

func (s *BookingStore) Get(ctx context.Context, id string) (domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return domain.Booking{}, err
	}
	var doc bookingDoc
	err = s.db.Collection(colBookings).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			observability.ObserveStore(colBookings, "get", "missing")
			return domain.Booking{}, domain.ErrNotFound
		}
		observability.ObserveStore(colBookings, "get", "error")
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	observability.ObserveStore(colBookings, "get", "ok")
	return doc.toDomain(), nil
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(colBookings).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		observability.ObserveStore(colBookings, "list", "error")
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		observability.ObserveStore(colBookings, "list", "error")
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	observability.ObserveStore(colBookings, "list", "ok")
	out := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *BookingStore) SetStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(colBookings).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		observability.ObserveStore(colBookings, "update", "error")
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		observability.ObserveStore(colBookings, "update", "missing")
		return domain.ErrNotFound
	}
	observability.ObserveStore(colBookings, "update", "ok")
	return nil
}

// ---- favorites ----

type favoriteDoc struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	UserID  string               `bson:"user_id"`
	HotelID string               `bson:"hotel_id"`
	Hotel   domain.HotelSnapshot `bson:"hotel"`
	AddedAt time.Time            `bson:"added_at"`
}

func (d favoriteDoc) toDomain() domain.Favorite {
	return domain.Favorite{
		ID:      d.ID.Hex(),
		UserID:  d.UserID,
		HotelID: d.HotelID,
		Hotel:   d.Hotel,
		AddedAt: d.AddedAt,
	}
}

func (s *Store) Favorites() *FavoriteStore { return &FavoriteStore{s} }

type FavoriteStore struct{ *Store }

func (s *FavoriteStore) Insert(ctx context.Context, f *domain.Favorite) (string, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := favoriteDoc{
		UserID:  f.UserID,
		HotelID: f.HotelID,
		Hotel:   f.Hotel,
		AddedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	res, err := s.db.Collection(colFavorites).InsertOne(ctx, doc)
	if err != nil {
		observability.ObserveStore(colFavorites, "insert", "error")
		return "", fmt.Errorf("insert favorite: %w", err)
	}
	observability.ObserveStore(colFavorites, "insert", "ok")
	f.AddedAt = doc.AddedAt
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *FavoriteStore) Get(ctx context.Context, id string) (domain.Favorite, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return domain.Favorite{}, err
	}
	var doc favoriteDoc
	err = s.db.Collection(colFavorites).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Favorite{}, domain.ErrNotFound
		}
		return domain.Favorite{}, fmt.Errorf("get favorite: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *FavoriteStore) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cur, err := s.db.Collection(colFavorites).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var docs []favoriteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	out := make([]domain.Favorite, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *FavoriteStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(colFavorites).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		observability.ObserveStore(colFavorites, "delete", "error")
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		observability.ObserveStore(colFavorites, "delete", "missing")
		return domain.ErrNotFound
	}
	observability.ObserveStore(colFavorites, "delete", "ok")
	return nil
}

// ---- search history ----

type historyDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Location   string             `bson:"location"`
	CheckIn    time.Time          `bson:"check_in"`
	CheckOut   time.Time          `bson:"check_out"`
	Guests     int                `bson:"guests"`
	SearchedAt time.Time          `bson:"searched_at"`
}

func (s *Store) History() *HistoryStore { return &HistoryStore{s} }

type HistoryStore struct{ *Store }

func (s *HistoryStore) Insert(ctx context.Context, r *domain.SearchRecord) (string, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := historyDoc{
		UserID:     r.UserID,
		Location:   r.Location,
		CheckIn:    r.CheckIn.UTC(),
		CheckOut:   r.CheckOut.UTC(),
		Guests:     r.Guests,
		SearchedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	res, err := s.db.Collection(colHistory).InsertOne(ctx, doc)
	if err != nil {
		observability.ObserveStore(colHistory, "insert", "error")
		return "", fmt.Errorf("insert search record: %w", err)
	}
	observability.ObserveStore(colHistory, "insert", "ok")
	r.SearchedAt = doc.SearchedAt
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *HistoryStore) ListByUser(ctx context.Context, userID string) ([]domain.SearchRecord, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "searched_at", Value: -1}})
	cur, err := s.db.Collection(colHistory).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer cur.Close(ctx)

	var docs []historyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode search history: %w", err)
	}
	out := make([]domain.SearchRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.SearchRecord{
			ID:         d.ID.Hex(),
			UserID:     d.UserID,
			Location:   d.Location,
			CheckIn:    d.CheckIn,
			CheckOut:   d.CheckOut,
			Guests:     d.Guests,
			SearchedAt: d.SearchedAt,
		})
	}
	return out, nil
}

// ---- users ----

func (s *Store) Users() *UserStore { return &UserStore{s} }

type UserStore struct{ *Store }

func (s *UserStore) Upsert(ctx context.Context, u domain.User) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	_, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": u.UID},
		bson.M{
			"$set":         bson.M{"email": u.Email, "display_name": u.DisplayName},
			"$setOnInsert": bson.M{"created_at": time.Now().UTC().Truncate(time.Millisecond)},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		observability.ObserveStore(colUsers, "upsert", "error")
		return fmt.Errorf("upsert user: %w", err)
	}
	observability.ObserveStore(colUsers, "upsert", "ok")
	return nil
}

func (s *UserStore) Get(ctx context.Context, uid string) (domain.User, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	var u domain.User
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
