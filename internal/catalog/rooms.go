package catalog

import (
	"fmt"

	"staybook/internal/domain"
)

// Room tiers are fixed: each hotel offers the same three types whose prices
// derive from the hotel's base nightly price.
type tier struct {
	name        string
	description string
	multiplier  float64
	capacity    int
	amenities   []string
	imageIndex  int
}

var roomTiers = []tier{
	{
		name:        "スタンダードルーム",
		description: "快適な滞在のための基本的な設備が整ったお部屋です。",
		multiplier:  1.0,
		capacity:    2,
		amenities:   []string{"エアコン", "テレビ", "冷蔵庫", "バスタブ"},
		imageIndex:  0,
	},
	{
		name:        "デラックスルーム",
		description: "より広いお部屋で、追加のアメニティが提供されます。",
		multiplier:  1.3,
		capacity:    2,
		amenities:   []string{"エアコン", "テレビ", "冷蔵庫", "バスタブ", "ミニバー", "バスローブ"},
		imageIndex:  1,
	},
	{
		name:        "スイートルーム",
		description: "最高級の設備とサービスを備えた広々としたお部屋です。",
		multiplier:  2.0,
		capacity:    4,
		amenities:   []string{"エアコン", "テレビ", "冷蔵庫", "バスタブ", "ミニバー", "バスローブ", "リビングエリア", "キッチン"},
		imageIndex:  2,
	},
}

// RoomTypesFor derives the three room types for h. Recomputed on every call;
// the result is only ever persisted as a snapshot inside a booking.
func RoomTypesFor(h domain.Hotel) []domain.RoomType {
	out := make([]domain.RoomType, 0, len(roomTiers))
	for i, t := range roomTiers {
		img := ""
		if len(h.Images) > 0 {
			img = h.Images[0]
			if t.imageIndex < len(h.Images) {
				img = h.Images[t.imageIndex]
			}
		}
		rt := domain.RoomType{
			ID:          fmt.Sprintf("%s-room-%d", h.ID, i+1),
			HotelID:     h.ID,
			Name:        t.name,
			Description: t.description,
			Price:       h.Price * t.multiplier,
			Currency:    h.Currency,
			Capacity:    t.capacity,
			Amenities:   t.amenities,
		}
		if img != "" {
			rt.Images = []string{img}
		}
		out = append(out, rt)
	}
	return out
}

// RoomTypeFor resolves a single derived room type by its id.
func (c *Catalog) RoomTypeFor(hotelID, roomTypeID string) (domain.RoomType, error) {
	h, err := c.Get(hotelID)
	if err != nil {
		return domain.RoomType{}, err
	}
	for _, rt := range RoomTypesFor(h) {
		if rt.ID == roomTypeID {
			return rt, nil
		}
	}
	return domain.RoomType{}, domain.ErrNotFound
}

var referenceReviews = []struct {
	userName string
	rating   float64
	comment  string
	date     string
}{
	{"田中太郎", 4.5, "とても快適に過ごせました。スタッフの対応も良く、また利用したいです。", "2025-03-15"},
	{"鈴木花子", 5.0, "最高のホテルでした！部屋からの眺めも素晴らしく、設備も充実していました。", "2025-02-28"},
	{"佐藤健", 4.0, "全体的に満足しています。ただ、チェックイン時に少し時間がかかりました。", "2025-01-10"},
}

// ReviewsFor derives the static reviews for a hotel.
func ReviewsFor(h domain.Hotel) []domain.Review {
	out := make([]domain.Review, 0, len(referenceReviews))
	for i, r := range referenceReviews {
		out = append(out, domain.Review{
			ID:       fmt.Sprintf("%s-review-%d", h.ID, i+1),
			HotelID:  h.ID,
			UserName: r.userName,
			Rating:   r.rating,
			Comment:  r.comment,
			Date:     r.date,
		})
	}
	return out
}

// Details assembles the full read model for one hotel.
func (c *Catalog) Details(id string) (domain.HotelDetails, error) {
	h, err := c.Get(id)
	if err != nil {
		return domain.HotelDetails{}, err
	}
	return domain.HotelDetails{
		Hotel:   h,
		Rooms:   RoomTypesFor(h),
		Reviews: ReviewsFor(h),
	}, nil
}
