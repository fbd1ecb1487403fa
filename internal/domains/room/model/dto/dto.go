package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateRoomRequest struct {
	HotelID       string                `json:"hotel_id"        validate:"required,uuid4"`
	RoomNo        string                `json:"room_no"         validate:"required,max=20"`
	RoomType      string                `json:"room_type"       validate:"required,oneof='Standard Room' 'Deluxe Room' 'Suite' 'Executive Suite' 'Poolside Room'"`
	PricePerNight int                   `json:"price_per_night" validate:"required,min=0"`
	IsAvailable   *bool                 `json:"is_available"    validate:"omitempty"`
	Image         *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		RoomNo:        c.RoomNo,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight,
		IsAvailable:   available,
		Image:         imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNo        string                `db:"room_no"         json:"room_no"         validate:"omitempty,max=20"`
	RoomType      string                `db:"room_type"       json:"room_type"       validate:"omitempty,oneof='Standard Room' 'Deluxe Room' 'Suite' 'Executive Suite' 'Poolside Room'"`
	PricePerNight *int                  `db:"price_per_night" json:"price_per_night" validate:"omitempty,min=0"`
	IsAvailable   *bool                 `db:"is_available"    json:"is_available"    validate:"omitempty"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID            string `json:"id"`
	HotelID       string `json:"hotel_id"`
	RoomNo        string `json:"room_no"`
	RoomType      string `json:"room_type"`
	PricePerNight int    `json:"price_per_night"`
	IsAvailable   bool   `json:"is_available"`
	Image         string `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomNo = model.RoomNo
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.IsAvailable = model.IsAvailable
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
