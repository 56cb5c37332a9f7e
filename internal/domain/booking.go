package domain

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed" // reserved for a future stay-completion process
)

// SnapshotVersion marks the schema of hotel/room snapshots embedded in
// bookings and favorites, so drift between the live catalog and historical
// documents stays explicit.
const SnapshotVersion = 1

// HotelSnapshot is a copy of the hotel taken at booking time. It insulates
// historical bookings from later catalog changes.
type HotelSnapshot struct {
	Version  int     `bson:"version"`
	HotelID  string  `bson:"hotel_id"`
	Name     string  `bson:"name"`
	Address  string  `bson:"address"`
	City     string  `bson:"city"`
	Country  string  `bson:"country"`
	Rating   float64 `bson:"rating"`
	Price    float64 `bson:"price"`
	Currency string  `bson:"currency"`
	Image    string  `bson:"image,omitempty"`
}

type RoomSnapshot struct {
	Version  int     `bson:"version"`
	RoomID   string  `bson:"room_id"`
	Name     string  `bson:"name"`
	Price    float64 `bson:"price"`
	Currency string  `bson:"currency"`
	Capacity int     `bson:"capacity"`
}

type Booking struct {
	ID         string
	UserID     string
	HotelID    string
	Hotel      HotelSnapshot
	Room       *RoomSnapshot
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalPrice float64
	Currency   string
	Status     BookingStatus
	CreatedAt  time.Time
}

type Favorite struct {
	ID      string
	UserID  string
	HotelID string
	Hotel   HotelSnapshot
	AddedAt time.Time
}

// SearchRecord logs one executed search for a signed-in user. Append-only.
type SearchRecord struct {
	ID         string
	UserID     string
	Location   string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	SearchedAt time.Time
}

// User is the profile document; the identity provider stays authoritative
// for credentials, this record only mirrors uid/email/displayName.
type User struct {
	UID         string    `bson:"_id"`
	Email       string    `bson:"email"`
	DisplayName string    `bson:"display_name"`
	CreatedAt   time.Time `bson:"created_at"`
}

// Session is the verified identity attached to a request.
type Session struct {
	UID         string
	Email       string
	DisplayName string
}

// Snapshot copies the fields of h worth keeping on a booking or favorite.
func Snapshot(h Hotel) HotelSnapshot {
	s := HotelSnapshot{
		Version:  SnapshotVersion,
		HotelID:  h.ID,
		Name:     h.Name,
		Address:  h.Address,
		City:     h.City,
		Country:  h.Country,
		Rating:   h.Rating,
		Price:    h.Price,
		Currency: h.Currency,
	}
	if len(h.Images) > 0 {
		s.Image = h.Images[0]
	}
	return s
}

func SnapshotRoom(r RoomType) RoomSnapshot {
	return RoomSnapshot{
		Version:  SnapshotVersion,
		RoomID:   r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Currency: r.Currency,
		Capacity: r.Capacity,
	}
}
