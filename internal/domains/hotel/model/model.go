package model

import "hotelier/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID        = "id"
	FieldName      = "name"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldContactNo = "contact_no"
	FieldEmail     = "email"
	FieldRating    = "rating"
)

type Hotel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Address   string `db:"address"`
	City      string `db:"city"`
	ContactNo string `db:"contact_no"`
	Email     string `db:"email"`
	Rating    int    `db:"rating"`
	model.Metadata
}
