package httpserver

import (
	"time"

	"staybook/internal/app"
	"staybook/internal/domain"
)

const dateLayout = "2006-01-02"

// ---- requests ----

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type providerLoginRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google"`
	IDToken  string `json:"id_token" validate:"required"`
}

type createBookingRequest struct {
	HotelID    string `json:"hotel_id" validate:"required"`
	RoomTypeID string `json:"room_type_id" validate:"omitempty"`
	CheckIn    string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests     int    `json:"guests" validate:"required,min=1"`
}

type addFavoriteRequest struct {
	HotelID string `json:"hotel_id" validate:"required"`
}

// ---- responses ----

type hotelResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
}

type roomTypeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type reviewResponse struct {
	ID       string  `json:"id"`
	UserName string  `json:"user_name"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
}

type hotelDetailsResponse struct {
	hotelResponse
	Rooms   []roomTypeResponse `json:"rooms"`
	Reviews []reviewResponse   `json:"reviews"`
}

type hotelSnapshotResponse struct {
	Version  int     `json:"version"`
	HotelID  string  `json:"hotel_id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Image    string  `json:"image,omitempty"`
}

type roomSnapshotResponse struct {
	Version  int     `json:"version"`
	RoomID   string  `json:"room_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Capacity int     `json:"capacity"`
}

type bookingResponse struct {
	ID         string                `json:"id"`
	HotelID    string                `json:"hotel_id"`
	Hotel      hotelSnapshotResponse `json:"hotel"`
	Room       *roomSnapshotResponse `json:"room,omitempty"`
	CheckIn    string                `json:"check_in"`
	CheckOut   string                `json:"check_out"`
	Guests     int                   `json:"guests"`
	TotalPrice float64               `json:"total_price"`
	Currency   string                `json:"currency"`
	Status     string                `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}

type favoriteResponse struct {
	ID      string                `json:"id"`
	HotelID string                `json:"hotel_id"`
	Hotel   hotelSnapshotResponse `json:"hotel"`
	AddedAt time.Time             `json:"added_at"`
}

type searchRecordResponse struct {
	ID         string    `json:"id"`
	Location   string    `json:"location"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Guests     int       `json:"guests"`
	SearchedAt time.Time `json:"searched_at"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		UID         string `json:"uid"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

type profileResponse struct {
	User struct {
		UID         string    `json:"uid"`
		Email       string    `json:"email"`
		DisplayName string    `json:"display_name"`
		CreatedAt   time.Time `json:"created_at"`
	} `json:"user"`
	Bookings  []bookingResponse      `json:"bookings"`
	Favorites []favoriteResponse     `json:"favorites"`
	History   []searchRecordResponse `json:"history"`
}

// ---- mappers ----

func toHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Address:     h.Address,
		City:        h.City,
		Country:     h.Country,
		Rating:      h.Rating,
		ReviewCount: h.ReviewCount,
		Price:       h.Price,
		Currency:    h.Currency,
		Images:      h.Images,
		Amenities:   h.Amenities,
		Latitude:    h.Lat,
		Longitude:   h.Lon,
	}
}

func toHotelDetailsResponse(hd domain.HotelDetails) hotelDetailsResponse {
	out := hotelDetailsResponse{hotelResponse: toHotelResponse(hd.Hotel)}
	out.Rooms = make([]roomTypeResponse, 0, len(hd.Rooms))
	for _, r := range hd.Rooms {
		out.Rooms = append(out.Rooms, roomTypeResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Currency:    r.Currency,
			Capacity:    r.Capacity,
			Amenities:   r.Amenities,
			Images:      r.Images,
		})
	}
	out.Reviews = make([]reviewResponse, 0, len(hd.Reviews))
	for _, rv := range hd.Reviews {
		out.Reviews = append(out.Reviews, reviewResponse{
			ID:       rv.ID,
			UserName: rv.UserName,
			Rating:   rv.Rating,
			Comment:  rv.Comment,
			Date:     rv.Date,
		})
	}
	return out
}

func toSnapshotResponse(s domain.HotelSnapshot) hotelSnapshotResponse {
	return hotelSnapshotResponse{
		Version:  s.Version,
		HotelID:  s.HotelID,
		Name:     s.Name,
		City:     s.City,
		Country:  s.Country,
		Price:    s.Price,
		Currency: s.Currency,
		Image:    s.Image,
	}
}

func toBookingResponse(b domain.Booking) bookingResponse {
	out := bookingResponse{
		ID:         b.ID,
		HotelID:    b.HotelID,
		Hotel:      toSnapshotResponse(b.Hotel),
		CheckIn:    b.CheckIn.Format(dateLayout),
		CheckOut:   b.CheckOut.Format(dateLayout),
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Currency:   b.Currency,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
	if b.Room != nil {
		out.Room = &roomSnapshotResponse{
			Version:  b.Room.Version,
			RoomID:   b.Room.RoomID,
			Name:     b.Room.Name,
			Price:    b.Room.Price,
			Currency: b.Room.Currency,
			Capacity: b.Room.Capacity,
		}
	}
	return out
}

func toFavoriteResponse(f domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:      f.ID,
		HotelID: f.HotelID,
		Hotel:   toSnapshotResponse(f.Hotel),
		AddedAt: f.AddedAt,
	}
}

func toSearchRecordResponse(r domain.SearchRecord) searchRecordResponse {
	out := searchRecordResponse{
		ID:         r.ID,
		Location:   r.Location,
		Guests:     r.Guests,
		SearchedAt: r.SearchedAt,
	}
	if !r.CheckIn.IsZero() {
		out.CheckIn = r.CheckIn.Format(dateLayout)
	}
	if !r.CheckOut.IsZero() {
		out.CheckOut = r.CheckOut.Format(dateLayout)
	}
	return out
}

func toSessionResponse(sess domain.Session, token string) sessionResponse {
	var out sessionResponse
	out.Token = token
	out.User.UID = sess.UID
	out.User.Email = sess.Email
	out.User.DisplayName = sess.DisplayName
	return out
}

func toProfileResponse(ov app.ProfileOverview) profileResponse {
	var out profileResponse
	out.User.UID = ov.User.UID
	out.User.Email = ov.User.Email
	out.User.DisplayName = ov.User.DisplayName
	out.User.CreatedAt = ov.User.CreatedAt
	out.Bookings = make([]bookingResponse, 0, len(ov.Bookings))
	for _, b := range ov.Bookings {
		out.Bookings = append(out.Bookings, toBookingResponse(b))
	}
	out.Favorites = make([]favoriteResponse, 0, len(ov.Favorites))
	for _, f := range ov.Favorites {
		out.Favorites = append(out.Favorites, toFavoriteResponse(f))
	}
	out.History = make([]searchRecordResponse, 0, len(ov.History))
	for _, h := range ov.History {
		out.History = append(out.History, toSearchRecordResponse(h))
	}
	return out
}
