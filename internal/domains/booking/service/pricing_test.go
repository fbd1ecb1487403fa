package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/booking/service"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name          string
		pricePerNight int
		checkIn       string
		checkOut      string
		want          int
		wantErr       bool
	}{
		{
			name:          "three nights",
			pricePerNight: 100,
			checkIn:       "2026-06-01",
			checkOut:      "2026-06-04",
			want:          300,
		},
		{
			name:          "single night",
			pricePerNight: 250,
			checkIn:       "2026-06-01",
			checkOut:      "2026-06-02",
			want:          250,
		},
		{
			name:          "same day is invalid",
			pricePerNight: 100,
			checkIn:       "2026-06-01",
			checkOut:      "2026-06-01",
			wantErr:       true,
		},
		{
			name:          "inverted range is invalid",
			pricePerNight: 100,
			checkIn:       "2026-06-04",
			checkOut:      "2026-06-01",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.TotalPrice(tt.pricePerNight, date(tt.checkIn), date(tt.checkOut))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, service.Nights(date("2026-06-01"), date("2026-06-04")))
	assert.Equal(t, 0, service.Nights(date("2026-06-01"), date("2026-06-01")))
	assert.Equal(t, 30, service.Nights(date("2026-06-01"), date("2026-07-01")))
}

func TestNightsAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Spring forward on 2026-03-08 makes this stay 47 wall-clock hours.
	checkIn := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	checkOut := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	assert.Equal(t, 2, service.Nights(checkIn, checkOut))

	total, err := service.TotalPrice(100, checkIn, checkOut)
	assert.NoError(t, err)
	assert.Equal(t, 200, total)

	// Fall back on 2026-11-01 makes this stay 49 wall-clock hours.
	checkIn = time.Date(2026, 10, 31, 0, 0, 0, 0, loc)
	checkOut = time.Date(2026, 11, 2, 0, 0, 0, 0, loc)

	assert.Equal(t, 2, service.Nights(checkIn, checkOut))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                string
		aCheckIn, aCheckOut string
		bCheckIn, bCheckOut string
		want                bool
	}{
		{
			name:     "fully contained",
			aCheckIn: "2026-06-02", aCheckOut: "2026-06-03",
			bCheckIn: "2026-06-01", bCheckOut: "2026-06-04",
			want: true,
		},
		{
			name:     "partial overlap",
			aCheckIn: "2026-06-03", aCheckOut: "2026-06-06",
			bCheckIn: "2026-06-01", bCheckOut: "2026-06-04",
			want: true,
		},
		{
			name:     "checkout on checkin day conflicts",
			aCheckIn: "2026-06-04", aCheckOut: "2026-06-06",
			bCheckIn: "2026-06-01", bCheckOut: "2026-06-04",
			want: true,
		},
		{
			name:     "disjoint ranges",
			aCheckIn: "2026-06-05", aCheckOut: "2026-06-06",
			bCheckIn: "2026-06-01", bCheckOut: "2026-06-04",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.Overlaps(date(tt.aCheckIn), date(tt.aCheckOut), date(tt.bCheckIn), date(tt.bCheckOut))

			assert.Equal(t, tt.want, got)
		})
	}
}
