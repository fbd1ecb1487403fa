package model

import "hotelier/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldRoomNo        = "room_no"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldIsAvailable   = "is_available"
	FieldImage         = "image"
)

const (
	RoomTypeStandard  = "Standard Room"
	RoomTypeDeluxe    = "Deluxe Room"
	RoomTypeSuite     = "Suite"
	RoomTypeExecutive = "Executive Suite"
	RoomTypePoolside  = "Poolside Room"
)

type Room struct {
	ID            string `db:"id"`
	HotelID       string `db:"hotel_id"`
	RoomNo        string `db:"room_no"`
	RoomType      string `db:"room_type"`
	PricePerNight int    `db:"price_per_night"`
	IsAvailable   bool   `db:"is_available"`
	Image         string `db:"image"`
	model.Metadata
}
