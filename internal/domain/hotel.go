package domain

import "time"

// Hotel is immutable reference data: created at catalog load, never mutated.
type Hotel struct {
	ID          string
	Name        string
	Description string
	Address     string
	City        string
	Country     string
	Rating      float64 // 0..5
	ReviewCount int
	Price       float64 // base nightly price
	Currency    string  // ISO code
	Images      []string
	Amenities   []string
	Lat, Lon    float64
}

// RoomType is derived from a hotel's base price on every read; it is never
// stored independently, only snapshotted into bookings.
type RoomType struct {
	ID          string
	HotelID     string
	Name        string
	Description string
	Price       float64
	Currency    string
	Capacity    int
	Amenities   []string
	Images      []string
}

type Review struct {
	ID       string
	HotelID  string
	UserName string
	Rating   float64
	Comment  string
	Date     string // calendar date, YYYY-MM-DD
}

// HotelDetails is the read model served by the hotel detail endpoint.
type HotelDetails struct {
	Hotel
	Rooms   []RoomType
	Reviews []Review
}

// SearchCriteria is transient: constructed per request, never persisted as an
// entity. A SearchRecord may log it.
type SearchCriteria struct {
	Location  string // empty means no location filter
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	MinPrice  *float64 // inclusive
	MaxPrice  *float64 // inclusive
	MinRating *float64 // inclusive
}
