package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	hotelMocks "hotelier/internal/domains/hotel/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type bookingServiceMocks struct {
	repo      *bookingMocks.MockBooking
	roomRepo  *roomMocks.MockRoom
	hotelRepo *hotelMocks.MockHotel
	db        *pgMocks.MockTransactor
	cache     *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingServiceMocks) {
	m := bookingServiceMocks{
		repo:      bookingMocks.NewMockBooking(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		hotelRepo: hotelMocks.NewMockHotel(ctrl),
		db:        pgMocks.NewMockTransactor(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.roomRepo, m.hotelRepo, m.db, cfg, m.cache, mocks.NewOtel(), nil)

	return svc, m
}

func inTx(m bookingServiceMocks) {
	m.db.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestBookingService_BookBasic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	room := roomModel.Room{
		ID:            "room-id",
		HotelID:       "hotel-id",
		RoomNo:        "101",
		PricePerNight: 100,
		IsAvailable:   true,
	}

	tests := []struct {
		name      string
		req       dto.BookRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantTotal int
	}{
		{
			name: "successful booking, three nights",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[roomModel.FieldIsAvailable])
						return nil
					})
			},
			wantTotal: 300,
		},
		{
			name: "past dates allowed on the basic path",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2020-01-01",
				CheckOutDate: "2020-01-03",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[roomModel.FieldIsAvailable])
						return nil
					})
			},
			wantTotal: 200,
		},
		{
			name: "inverted range",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-04",
				CheckOutDate: "2026-06-01",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "malformed date",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "June first",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "room not found",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "conflicting booking",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "existing"}}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "concurrent insert trips the exclusion constraint",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23P01"})
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "concurrent insert trips the unique constraint",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.BookBasic(ctx, "room-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalPrice)
				assert.Equal(t, "room-id", res.RoomID)
				assert.NotEmpty(t, res.ID)
			}
		})
	}
}

func TestBookingService_BookStrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	room := roomModel.Room{
		ID:            "room-id",
		HotelID:       "hotel-id",
		RoomNo:        "101",
		PricePerNight: 100,
		IsAvailable:   true,
	}

	tests := []struct {
		name      string
		req       dto.BookRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful booking",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[roomModel.FieldIsAvailable])
						return nil
					})
			},
		},
		{
			name: "past check-in rejected",
			req: dto.BookRoomRequest{
				GuestName:    "Alice",
				CheckInDate:  "2020-01-01",
				CheckOutDate: "2020-01-03",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.BookStrict(ctx, "hotel-id", "room-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	booking := model.Booking{
		ID:     "booking-id",
		RoomID: "room-id",
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful cancel frees the room",
			id:   "booking-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-id"}, nil)

				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "booking-id").
					Return(0, nil)

				m.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, true, fields[roomModel.FieldIsAvailable])
						return nil
					})
			},
		},
		{
			name: "room stays occupied when another stay covers today",
			id:   "booking-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				inTx(m)

				m.roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-id"}, nil)

				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "booking-id").
					Return(1, nil)

				m.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[roomModel.FieldIsAvailable])
						return nil
					})
			},
		},
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			id:   "booking-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Cancel(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ListAvailableRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantRooms int
	}{
		{
			name: "successful listing",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					ListAvailableRooms(gomock.Any(), "hotel-id", gomock.Any(), gomock.Any()).
					Return([]roomModel.Room{{ID: "room-1"}, {ID: "room-2"}}, nil)
			},
			wantRooms: 2,
		},
		{
			name: "past dates rejected",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2020-01-01",
				CheckOutDate: "2020-01-03",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "inverted range rejected",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-04",
				CheckOutDate: "2030-06-01",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "hotel not found",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ListAvailableRooms(context.Background(), "hotel-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Rooms, tt.wantRooms)
				assert.Equal(t, tt.wantRooms, res.TotalData)
			}
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	room := roomModel.Room{ID: "room-id", HotelID: "hotel-id"}

	tests := []struct {
		name          string
		req           dto.AvailabilityRequest
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable bool
		wantConflicts []string
	}{
		{
			name: "room free for the window",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlapping(gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantAvailable: true,
		},
		{
			name: "conflicting bookings named",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlapping(gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "booking-1"}, {ID: "booking-2"}}, nil)
			},
			wantConflicts: []string{"booking-1", "booking-2"},
		},
		{
			name: "past dates allowed for the check",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2020-01-01",
				CheckOutDate: "2020-01-03",
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					FindOverlapping(gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantAvailable: true,
		},
		{
			name: "inverted range rejected",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-04",
				CheckOutDate: "2030-06-01",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "malformed date rejected",
			req: dto.AvailabilityRequest{
				CheckInDate:  "June 1st",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "room not found",
			req: dto.AvailabilityRequest{
				CheckInDate:  "2030-06-01",
				CheckOutDate: "2030-06-04",
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CheckAvailability(context.Background(), "room-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAvailable, res.Available)
				assert.Equal(t, tt.wantConflicts, res.ConflictingBookingIDs)
			}
		})
	}
}

func TestBookingService_ListHotelRoomBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name         string
		query        dto.ListBookingsQuery
		setupMock    func()
		wantErr      bool
		wantRooms    int
		wantBookings int
	}{
		{
			name:  "rooms listing",
			query: dto.ListBookingsQuery{All: true},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.roomRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]roomModel.Room{{ID: "room-1"}}, nil)
			},
			wantRooms: 1,
		},
		{
			name:  "bookings listing",
			query: dto.ListBookingsQuery{Booking: true},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "booking-1"}, {ID: "booking-2"}}, nil)
			},
			wantBookings: 2,
		},
		{
			name:  "today listing",
			query: dto.ListBookingsQuery{Today: true},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "booking-1"}}, nil)
			},
			wantBookings: 1,
		},
		{
			name:  "hotel not found",
			query: dto.ListBookingsQuery{Booking: true},
			setupMock: func() {
				m.hotelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ListHotelRoomBookings(context.Background(), "hotel-id", gDto.QueryParams{Page: 1, Limit: 10}, tt.query)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Rooms, tt.wantRooms)
				assert.Len(t, res.Bookings, tt.wantBookings)
			}
		})
	}
}
