package model

import (
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldGuestName    = "guest_name"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalPrice   = "total_price"
	FieldHotelID      = "hotel_id"
)

type Booking struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	GuestName    string    `db:"guest_name"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	TotalPrice   int       `db:"total_price"`
	HotelID      string    `db:"hotel_id" table:"rooms"`
	RoomNo       string    `db:"room_no"  table:"rooms"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id"
}
