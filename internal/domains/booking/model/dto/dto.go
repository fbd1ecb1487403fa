package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domains/booking/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

// AvailabilityRequest is the date window for an availability query.
type AvailabilityRequest struct {
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

func (r *AvailabilityRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	return parseDateRange(r.CheckInDate, r.CheckOutDate)
}

type BookRoomRequest struct {
	GuestName    string `json:"guest_name"     validate:"required,max=100"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

func (r *BookRoomRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	return parseDateRange(r.CheckInDate, r.CheckOutDate)
}

func (r *BookRoomRequest) ToModel(user, roomID string, checkIn, checkOut time.Time, totalPrice int) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		RoomID:       roomID,
		GuestName:    r.GuestName,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   totalPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func parseDateRange(checkInStr, checkOutStr string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateFormat, checkInStr)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	checkOut, err = timezone.Parse(constant.DateFormat, checkOutStr)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	RoomID       string `json:"room_id"`
	HotelID      string `json:"hotel_id,omitempty"`
	RoomNo       string `json:"room_no,omitempty"`
	GuestName    string `json:"guest_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	TotalPrice   int    `json:"total_price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.HotelID = model.HotelID
	r.RoomNo = model.RoomNo
	r.GuestName = model.GuestName
	r.CheckInDate = model.CheckInDate.Format(constant.DateFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateFormat)
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// AvailableRoomsResponse lists the rooms of a hotel free for a date window.
type AvailableRoomsResponse struct {
	Rooms     []roomDto.RoomResponse `json:"rooms"`
	TotalData int                    `json:"total_data"`
}

// RoomAvailabilityResponse answers a per-room availability check, naming the
// bookings that block the requested window.
type RoomAvailabilityResponse struct {
	Available             bool     `json:"available"`
	ConflictingBookingIDs []string `json:"conflicting_booking_ids,omitempty"`
}

// ListBookingsQuery selects what a hotel booking listing returns: the
// hotel's rooms, its bookings, or only bookings checking in today.
type ListBookingsQuery struct {
	All     bool
	Booking bool
	Today   bool
}

type ListHotelRoomBookingsResponse struct {
	Rooms    []roomDto.RoomResponse `json:"rooms,omitempty"`
	Bookings []BookingResponse      `json:"bookings,omitempty"`
}

// BookingEvent is the payload published to Kafka on booking lifecycle
// changes.
type BookingEvent struct {
	BookingID    string `json:"booking_id"`
	RoomID       string `json:"room_id"`
	GuestName    string `json:"guest_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	TotalPrice   int    `json:"total_price"`
	OccurredAt   string `json:"occurred_at"`
}

func NewBookingEvent(booking model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		GuestName:    booking.GuestName,
		CheckInDate:  booking.CheckInDate.Format(constant.DateFormat),
		CheckOutDate: booking.CheckOutDate.Format(constant.DateFormat),
		TotalPrice:   booking.TotalPrice,
		OccurredAt:   timezone.Now().Format(constant.DateTimeFormat),
	}
}
