package catalog

import (
	"math"
	"time"

	"staybook/internal/domain"
)

// Nights is the ceiling of the day difference between checkIn and checkOut.
// A stay shorter than 24h still counts as one night; checkOut must be
// strictly after checkIn.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, domain.ErrInvalidRange
	}
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// TotalCost returns the unrounded stay cost. Rounding to a currency display
// convention happens at the presentation boundary, not here.
func TotalCost(perNight float64, nights int) float64 {
	return perNight * float64(nights)
}
