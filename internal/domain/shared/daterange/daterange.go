package daterange

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
)

const day = 24 * time.Hour

// DateRange represents a half-open interval [checkIn, checkOut)
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts started days between the two ends, rounding partial days up.
func (dr DateRange) Nights() int {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return 0
	}
	return int(math.Ceil(float64(dr.CheckOut.Sub(dr.CheckIn)) / float64(day)))
}

// Within reports whether dr starts no earlier than from and ends no later than to.
func (dr DateRange) Within(from, to time.Time) bool {
	return !dr.CheckIn.Before(from) && !dr.CheckOut.After(to)
}

// Days calls fn for every calendar day in the range, checkout excluded.
// Iteration is by calendar date so DST shifts never skip or repeat a day.
func (dr DateRange) Days(fn func(time.Time)) {
	for d := dr.CheckIn; d.Before(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
