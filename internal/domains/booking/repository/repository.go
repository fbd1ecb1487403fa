package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

// Overlap predicate: an existing booking conflicts iff its range touches the
// requested one on either endpoint, so a checkout and a checkin on the same
// day still conflict.
const overlapCondition = "check_in_date <= :check_out AND check_out_date >= :check_in"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error)
	FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error)
	CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (int, error)
	ListAvailableRooms(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]roomModel.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const findOverlappingQuery = `
SELECT id, room_id, guest_name, check_in_date, check_out_date, total_price
FROM bookings
WHERE room_id = :room_id AND ` + overlapCondition

// FindOverlapping returns the bookings of a room that conflict with the
// given date window.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findOverlappingQuery)

	return repo.findOverlapping(ctx, repo.db.Read, roomID, checkIn, checkOut)
}

// FindOverlappingTx runs the same conflict query through a transaction so
// the result is consistent with the room row lock held by the caller.
func (repo *repositoryImpl) FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlappingTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findOverlappingQuery)

	return repo.findOverlapping(ctx, sqltx, roomID, checkIn, checkOut)
}

type namedPreparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

func (repo *repositoryImpl) findOverlapping(ctx context.Context, preparer namedPreparer, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	args := map[string]any{
		"room_id":   roomID,
		"check_in":  checkIn,
		"check_out": checkOut,
	}

	var bookings []model.Booking

	prepare, err := preparer.PrepareNamedContext(ctx, findOverlappingQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return bookings, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &bookings, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return bookings, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return bookings, nil
}

const countOverlappingQuery = `
SELECT COUNT(id)
FROM bookings
WHERE room_id = :room_id AND id != :exclude_id AND ` + overlapCondition

// CountOverlappingTx counts conflicts for a room excluding one booking, used
// when recomputing the availability flag on cancellation.
func (repo *repositoryImpl) CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlappingTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, countOverlappingQuery)

	args := map[string]any{
		"room_id":    roomID,
		"check_in":   checkIn,
		"check_out":  checkOut,
		"exclude_id": excludeID,
	}

	var count int

	prepare, err := sqltx.PrepareNamedContext(ctx, countOverlappingQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &count, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

const listAvailableRoomsQuery = `
SELECT rooms.id, rooms.hotel_id, rooms.room_no, rooms.room_type, rooms.price_per_night, rooms.is_available, rooms.image,
       rooms.created_at, rooms.modified_at, rooms.created_by, rooms.modified_by
FROM rooms
WHERE rooms.hotel_id = :hotel_id
  AND NOT EXISTS (
    SELECT 1 FROM bookings
    WHERE bookings.room_id = rooms.id AND ` + overlapCondition + `
  )
ORDER BY rooms.room_no`

// ListAvailableRooms returns the rooms of a hotel without any conflicting
// booking in the window.
func (repo *repositoryImpl) ListAvailableRooms(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]roomModel.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListAvailableRooms")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, listAvailableRoomsQuery)

	args := map[string]any{
		"hotel_id":  hotelID,
		"check_in":  checkIn,
		"check_out": checkOut,
	}

	var rooms []roomModel.Room

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, listAvailableRoomsQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rooms, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rooms, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rooms, fmt.Errorf("failed to list available rooms: %w", err)
	}

	return rooms, nil
}
