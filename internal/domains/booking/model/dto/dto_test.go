package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/shared/failure"
)

func TestBookRoomRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{
			name:     "valid dates",
			checkIn:  "2026-06-01",
			checkOut: "2026-06-04",
			wantErr:  false,
		},
		{
			name:     "malformed check-in",
			checkIn:  "01-06-2026",
			checkOut: "2026-06-04",
			wantErr:  true,
		},
		{
			name:     "malformed check-out",
			checkIn:  "2026-06-01",
			checkOut: "not-a-date",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.BookRoomRequest{
				GuestName:    "Jane Doe",
				CheckInDate:  tt.checkIn,
				CheckOutDate: tt.checkOut,
			}

			checkIn, checkOut, err := req.ParseDates()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "2026-06-01", checkIn.Format("2006-01-02"))
				assert.Equal(t, "2026-06-04", checkOut.Format("2006-01-02"))
			}
		})
	}
}

func TestBookRoomRequest_ToModel(t *testing.T) {
	req := dto.BookRoomRequest{
		GuestName:    "Jane Doe",
		CheckInDate:  "2026-06-01",
		CheckOutDate: "2026-06-04",
	}

	checkIn := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)

	booking := req.ToModel("user-id", "room-id", checkIn, checkOut, 300)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-id", booking.RoomID)
	assert.Equal(t, "Jane Doe", booking.GuestName)
	assert.Equal(t, checkIn, booking.CheckInDate)
	assert.Equal(t, checkOut, booking.CheckOutDate)
	assert.Equal(t, 300, booking.TotalPrice)
	assert.Equal(t, "user-id", booking.CreatedBy)
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.Booking{
		ID:           "booking-id",
		RoomID:       "room-id",
		HotelID:      "hotel-id",
		RoomNo:       "101",
		GuestName:    "Jane Doe",
		CheckInDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:   300,
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "booking-id", res.ID)
	assert.Equal(t, "hotel-id", res.HotelID)
	assert.Equal(t, "101", res.RoomNo)
	assert.Equal(t, "2026-06-01", res.CheckInDate)
	assert.Equal(t, "2026-06-04", res.CheckOutDate)
	assert.Equal(t, 300, res.TotalPrice)
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{
		ID:           "booking-id",
		RoomID:       "room-id",
		GuestName:    "Jane Doe",
		CheckInDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:   300,
	}

	event := dto.NewBookingEvent(booking)

	assert.Equal(t, "booking-id", event.BookingID)
	assert.Equal(t, "room-id", event.RoomID)
	assert.Equal(t, "2026-06-01", event.CheckInDate)
	assert.Equal(t, "2026-06-04", event.CheckOutDate)
	assert.Equal(t, 300, event.TotalPrice)
	assert.NotEmpty(t, event.OccurredAt)
}
