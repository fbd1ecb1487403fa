package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers booking routes flat because they live under the /hotels
// and /rooms prefixes owned by the catalog handlers.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/hotels/{id}/rooms", handler.GetAvailableRooms)
	router.Post("/hotels/{id}/{roomId}/book", handler.BookRoom)
	router.Post("/rooms/{id}/book", handler.BookRoomDirect)
	router.Post("/rooms/{id}/availability", handler.CheckRoomAvailability)
	router.Get("/hotels/{id}/rooms/bookings", handler.GetHotelRoomBookings)
	router.Delete("/bookings/{id}", handler.CancelBooking)
}

// GetAvailableRooms lists rooms of a hotel free for a date range.
// @Summary List available rooms
// @Description List the rooms of a hotel that are free for the requested date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.AvailabilityRequest true "Availability Request"
// @Success 200 {object} response.Data[dto.AvailableRoomsResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [post]
// @Security BearerAuth
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamID)

	req := dto.AvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.ListAvailableRooms(ctx, hotelID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list available rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// BookRoom books a room of a hotel for a date range.
// @Summary Book a room
// @Description Book a room of a hotel for the requested date range. Past check-in dates are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param roomId path string true "Room ID"
// @Param request body dto.BookRoomRequest true "Book Room Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking confirmation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/{roomId}/book [post]
// @Security BearerAuth
func (handler *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRoom")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamID)
	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	req := dto.BookRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.BookStrict(ctx, hotelID, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room booked successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// BookRoomDirect books a room by its ID without a hotel scope.
// @Summary Book a room directly
// @Description Book a room by its ID for the requested date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.BookRoomRequest true "Book Room Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking confirmation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/book [post]
// @Security BearerAuth
func (handler *Handler) BookRoomDirect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRoomDirect")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamID)

	req := dto.BookRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.BookBasic(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room booked successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckRoomAvailability checks whether a room is free for a date range.
// @Summary Check room availability
// @Description Check whether a room is available for the requested date range, naming conflicting bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.AvailabilityRequest true "Availability Request"
// @Success 200 {object} response.Data[dto.RoomAvailabilityResponse] "Availability result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/availability [post]
// @Security BearerAuth
func (handler *Handler) CheckRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckRoomAvailability")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamID)

	req := dto.AvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room availability checked successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetHotelRoomBookings lists rooms or bookings of a hotel depending on flags.
// @Summary List hotel rooms or bookings
// @Description List a hotel's rooms (all=true), its bookings (booking=true), or today's check-ins (today=true).
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param all query boolean false "List rooms"
// @Param booking query boolean false "List bookings"
// @Param today query boolean false "List today's check-ins"
// @Success 200 {object} response.Data[dto.ListHotelRoomBookingsResponse] "Rooms or bookings"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetHotelRoomBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelRoomBookings")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := dto.ListBookingsQuery{
		All:     parseBoolParam(r, "all"),
		Booking: parseBoolParam(r, "booking"),
		Today:   parseBoolParam(r, "today"),
	}

	res, err := handler.service.ListHotelRoomBookings(ctx, hotelID, queryParams, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list hotel room bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel room bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBooking cancels a booking by its ID.
// @Summary Cancel a booking
// @Description Cancel a booking and release the room when no other stay covers today.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

func parseBoolParam(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return false
	}

	return value
}
