package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	hotelModel "hotelier/internal/domains/hotel/model"
	hotelRepo "hotelier/internal/domains/hotel/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

const (
	cacheAvailability  = "booking:availability"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	ListAvailableRooms(ctx context.Context, hotelID string, req dto.AvailabilityRequest) (dto.AvailableRoomsResponse, error)
	CheckAvailability(ctx context.Context, roomID string, req dto.AvailabilityRequest) (dto.RoomAvailabilityResponse, error)
	BookStrict(ctx context.Context, hotelID, roomID string, req dto.BookRoomRequest) (dto.BookingResponse, error)
	BookBasic(ctx context.Context, roomID string, req dto.BookRoomRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	ListHotelRoomBookings(ctx context.Context, hotelID string, params gDto.QueryParams, query dto.ListBookingsQuery) (dto.ListHotelRoomBookingsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	hotelRepo hotelRepo.Hotel
	db        postgres.Transactor
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	producer  kafka.Producer
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	hotelRepo hotelRepo.Hotel,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	producer kafka.Producer,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
		db:        db,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		producer:  producer,
	}
}

func (s *serviceImpl) ListAvailableRooms(ctx context.Context, hotelID string, req dto.AvailabilityRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	if err = validateRange(checkIn, checkOut, true); err != nil {
		return res, err
	}

	hotelExists, err := s.hotelRepo.Exist(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return res, fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !hotelExists {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, hotelID, req.CheckInDate, req.CheckOutDate)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for available rooms")

		return res, nil
	}

	rooms, err := s.repo.ListAvailableRooms(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to list available rooms")

		return res, fmt.Errorf("failed to list available rooms: %w", err)
	}

	res.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res.Rooms[i].FromModel(room)
	}
	res.TotalData = len(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save available rooms to cache")
		}
	}()

	return res, nil
}

// CheckAvailability reports whether a single room is free for a date window
// and which bookings conflict with it.
func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID string, req dto.AvailabilityRequest) (res dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	if err = validateRange(checkIn, checkOut, false); err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == "" {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	conflicts, err := s.repo.FindOverlapping(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflicts")

		return res, fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	res.Available = len(conflicts) == 0
	for _, conflict := range conflicts {
		res.ConflictingBookingIDs = append(res.ConflictingBookingIDs, conflict.ID)
	}

	return res, nil
}

// BookStrict books a room within a hotel. Past check-in dates are rejected
// on this path.
func (s *serviceImpl) BookStrict(ctx context.Context, hotelID, roomID string, req dto.BookRoomRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookStrict")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.book(ctx, hotelID, roomID, req, true)
}

// BookBasic books a room directly. Only inverted ranges are rejected, past
// stays can still be recorded on this path.
func (s *serviceImpl) BookBasic(ctx context.Context, roomID string, req dto.BookRoomRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookBasic")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.book(ctx, constant.Empty, roomID, req, false)
}

func (s *serviceImpl) book(ctx context.Context, hotelID, roomID string, req dto.BookRoomRequest, strict bool) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	if err = validateRange(checkIn, checkOut, strict); err != nil {
		return res, err
	}

	roomFilter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)
	if hotelID != constant.Empty {
		roomFilter.Operator = gDto.FilterGroupOperatorAnd
		roomFilter.Filters = append(roomFilter.Filters, gDto.Filter{
			Field:    roomModel.FieldHotelID,
			Table:    roomModel.TableName,
			Operator: gDto.FilterOperatorEq,
			Value:    hotelID,
		})
	}

	var booking model.Booking

	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, roomFilter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock room")

			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		conflicts, err := s.repo.FindOverlappingTx(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			log.Error().Err(err).Msg("failed to check booking conflicts")

			return fmt.Errorf("failed to check booking conflicts: %w", err)
		}

		if len(conflicts) > 0 {
			ids := make([]string, len(conflicts))
			for i, conflict := range conflicts {
				ids[i] = conflict.ID
			}

			return failure.BadRequestFromString("room is not available for the selected dates, conflicting bookings: " + strings.Join(ids, ", ")) // nolint:wrapcheck
		}

		totalPrice, err := TotalPrice(room.PricePerNight, checkIn, checkOut)
		if err != nil {
			return err
		}

		booking = req.ToModel(user, room.ID, checkIn, checkOut, totalPrice)
		booking.HotelID = room.HotelID
		booking.RoomNo = room.RoomNo

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			// A concurrent racer that slipped past the row lock trips the
			// exclusion constraint. Report it as an availability conflict.
			if isBookingConflict(err) {
				return failure.BadRequestFromString("room is not available for the selected dates") // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to insert booking")

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		updatedFields := map[string]any{
			roomModel.FieldIsAvailable: false,
			constant.FieldModifiedAt:   timezone.Now(),
			constant.FieldModifiedBy:   user,
		}

		if err = s.roomRepo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update room availability")

			return fmt.Errorf("failed to update room availability: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, constant.KafkaKeyBookingCreated, booking)

		shared.InvalidateCaches(c, s.cache, cacheAvailability)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to lock room")

			return fmt.Errorf("failed to lock room: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		// The flag is recomputed from today's occupancy rather than blindly
		// set true, another booking may still cover today.
		today := timezone.Today()

		occupied, err := s.repo.CountOverlappingTx(ctx, tx, booking.RoomID, today, today, booking.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to recompute room occupancy")

			return fmt.Errorf("failed to recompute room occupancy: %w", err)
		}

		updatedFields := map[string]any{
			roomModel.FieldIsAvailable: occupied == 0,
			constant.FieldModifiedAt:   timezone.Now(),
			constant.FieldModifiedBy:   user,
		}

		if err = s.roomRepo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update room availability")

			return fmt.Errorf("failed to update room availability: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, constant.KafkaKeyBookingCancelled, booking)

		shared.InvalidateCaches(c, s.cache, cacheAvailability)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	return nil
}

func (s *serviceImpl) ListHotelRoomBookings(ctx context.Context, hotelID string, params gDto.QueryParams, query dto.ListBookingsQuery) (res dto.ListHotelRoomBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListHotelRoomBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotelExists, err := s.hotelRepo.Exist(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return res, fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !hotelExists {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	if query.All {
		rooms, err := s.roomRepo.GetAll(ctx, params, hotelFilter(hotelID))
		if err != nil {
			log.Error().Err(err).Msg("failed to get hotel rooms")

			return res, fmt.Errorf("failed to get hotel rooms: %w", err)
		}

		res.Rooms = make([]roomDto.RoomResponse, len(rooms))
		for i, room := range rooms {
			res.Rooms[i].FromModel(room)
		}

		return res, nil
	}

	filter := hotelFilter(hotelID)
	if query.Today {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCheckInDate,
			Table:    model.TableName,
			Operator: gDto.FilterOperatorEq,
			Value:    timezone.Today(),
		})
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel bookings")

		return res, fmt.Errorf("failed to get hotel bookings: %w", err)
	}

	res.Bookings = make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res.Bookings[i].FromModel(booking)
	}

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, key string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	message := kafka.Message{
		Key:   key,
		Value: dto.NewBookingEvent(booking),
	}

	if err := s.producer.SendMessages(ctx, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to publish booking event")
	}
}

func validateRange(checkIn, checkOut time.Time, strict bool) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	if strict && checkIn.Before(timezone.Today()) {
		return failure.BadRequestFromString("check_in_date must not be in the past") // nolint:wrapcheck
	}

	return nil
}

func hotelFilter(hotelID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "hotel_id",
				Field:    roomModel.FieldHotelID,
				Table:    roomModel.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    hotelID,
			},
		},
	}
}

func isBookingConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)

		return code == constant.PqErrorCodeUniqueViolation || code == constant.PqErrorCodeExclusionViolation
	}

	return false
}
