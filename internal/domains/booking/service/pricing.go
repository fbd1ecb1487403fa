package service

import (
	"time"

	"hotelier/shared/failure"
)

// Nights returns the whole-day difference between checkIn and checkOut.
// Both dates are normalized to UTC midnights first so DST transitions in the
// configured timezone never shorten or stretch a night.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in) / (24 * time.Hour))
}

// TotalPrice computes the stay price as nights times the nightly rate using
// integer arithmetic. checkOut on or before checkIn is an invalid range.
func TotalPrice(pricePerNight int, checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	return Nights(checkIn, checkOut) * pricePerNight, nil
}

// Overlaps reports whether two date ranges conflict. The comparison is
// inclusive on both endpoints, so a checkout and a checkin on the same day
// count as a conflict.
func Overlaps(aCheckIn, aCheckOut, bCheckIn, bCheckOut time.Time) bool {
	return !aCheckIn.After(bCheckOut) && !aCheckOut.Before(bCheckIn)
}
