package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/hotel/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateHotelRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	Address   string `json:"address"    validate:"omitempty,max=255"`
	City      string `json:"city"       validate:"required,max=100"`
	ContactNo string `json:"contact_no" validate:"omitempty,max=20"`
	Email     string `json:"email"      validate:"omitempty,email,max=100"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	return model.Hotel{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		ContactNo: c.ContactNo,
		Email:     c.Email,
		Rating:    c.Rating,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name      string `db:"name"       json:"name"       validate:"omitempty,max=100"`
	Address   string `db:"address"    json:"address"    validate:"omitempty,max=255"`
	City      string `db:"city"       json:"city"       validate:"omitempty,max=100"`
	ContactNo string `db:"contact_no" json:"contact_no" validate:"omitempty,max=20"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Rating    *int   `db:"rating"     json:"rating"     validate:"omitempty,min=1,max=5"`
}

type HotelResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ContactNo string `json:"contact_no"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.City = model.City
	r.ContactNo = model.ContactNo
	r.Email = model.Email
	r.Rating = model.Rating
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
