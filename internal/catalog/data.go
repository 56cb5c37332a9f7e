package catalog

import "staybook/internal/domain"

// referenceHotels is the reference catalog. Prices are nightly base rates in
// JPY; room-type prices derive from them.
var referenceHotels = []domain.Hotel{
	{
		ID:          "hotel-1",
		Name:        "グランド東京ホテル",
		Description: "東京の中心部に位置する豪華なホテルです。東京タワーやショッピングエリアへのアクセスも良好です。",
		Address:     "東京都港区芝公園4-2-8",
		City:        "東京",
		Country:     "日本",
		Rating:      4.7,
		ReviewCount: 1250,
		Price:       25000,
		Currency:    "JPY",
		Images: []string{
			"https://images.unsplash.com/photo-1566073771259-6a8506099945",
			"https://images.unsplash.com/photo-1582719508461-905c673771fd",
			"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		},
		Amenities: []string{"Wi-Fi", "プール", "スパ", "フィットネスセンター", "レストラン", "駐車場"},
		Lat:       35.6585,
		Lon:       139.7454,
	},
	{
		ID:          "hotel-2",
		Name:        "京都トラディショナルイン",
		Description: "京都の伝統的な雰囲気を味わえる宿。有名な観光スポットへのアクセスも良好です。",
		Address:     "京都府京都市東山区祇園町南側570-2",
		City:        "京都",
		Country:     "日本",
		Rating:      4.9,
		ReviewCount: 890,
		Price:       30000,
		Currency:    "JPY",
		Images: []string{
			"https://images.unsplash.com/photo-1601053720380-0fa6b742cc89",
			"https://images.unsplash.com/photo-1545304773-9f2f0d6e2d10",
			"https://images.unsplash.com/photo-1545304773-9f2f0d6e2d10",
		},
		Amenities: []string{"Wi-Fi", "温泉", "日本庭園", "伝統的な食事", "浴衣レンタル"},
		Lat:       35.0035,
		Lon:       135.7775,
	},
	{
		ID:          "hotel-3",
		Name:        "大阪ビジネスホテル",
		Description: "大阪の中心部に位置するビジネスホテル。観光やビジネスに最適です。",
		Address:     "大阪府大阪市中央区難波5-1-60",
		City:        "大阪",
		Country:     "日本",
		Rating:      4.2,
		ReviewCount: 1560,
		Price:       15000,
		Currency:    "JPY",
		Images: []string{
			"https://images.unsplash.com/photo-1566073771259-6a8506099945",
			"https://images.unsplash.com/photo-1582719508461-905c673771fd",
			"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		},
		Amenities: []string{"Wi-Fi", "ビジネスセンター", "レストラン", "コンビニ"},
		Lat:       34.6684,
		Lon:       135.5022,
	},
	{
		ID:          "hotel-4",
		Name:        "沖縄リゾートホテル",
		Description: "沖縄の美しいビーチに面したリゾートホテル。マリンアクティビティも充実しています。",
		Address:     "沖縄県那覇市おもろまち4-11-1",
		City:        "沖縄",
		Country:     "日本",
		Rating:      4.8,
		ReviewCount: 2100,
		Price:       35000,
		Currency:    "JPY",
		Images: []string{
			"https://images.unsplash.com/photo-1566073771259-6a8506099945",
			"https://images.unsplash.com/photo-1582719508461-905c673771fd",
			"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		},
		Amenities: []string{"Wi-Fi", "プール", "ビーチアクセス", "スパ", "マリンスポーツ", "レストラン"},
		Lat:       26.2124,
		Lon:       127.6809,
	},
	{
		ID:          "hotel-5",
		Name:        "北海道スキーリゾート",
		Description: "北海道の雄大な自然に囲まれたスキーリゾート。冬はスキー、夏はトレッキングが楽しめます。",
		Address:     "北海道虻田郡倶知安町字山田204",
		City:        "北海道",
		Country:     "日本",
		Rating:      4.6,
		ReviewCount: 1800,
		Price:       28000,
		Currency:    "JPY",
		Images: []string{
			"https://images.unsplash.com/photo-1566073771259-6a8506099945",
			"https://images.unsplash.com/photo-1582719508461-905c673771fd",
			"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		},
		Amenities: []string{"Wi-Fi", "スキー場直結", "温泉", "レストラン", "スキーレンタル", "スキースクール"},
		Lat:       42.8614,
		Lon:       140.6982,
	},
}
