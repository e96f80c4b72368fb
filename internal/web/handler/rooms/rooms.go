// Package rooms provides the room listing, the filtered search used by
// the booking flow, and the admin CRUD routes.
package rooms

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/controller/catalog"
	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
)

const (
	// ListPath lists every room.
	ListPath = "/room"
	// SearchPath is the filtered search used when booking.
	SearchPath = "/rooms"
	// CreatePath creates a room.
	CreatePath = "/addroom"
	// UpdatePath updates a room by id.
	UpdatePath = "/updateroom/:id"
	// DeletePath removes a room by id.
	DeletePath = "/deleteroom/:id"
)

// Service provides room listing, search and CRUD.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Listing and search sit behind the booking menu;
// the CRUD routes sit behind the rooms management menu.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *auth.Resolver) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	bookingGuard := auth.RequireMenu(resolver, models.MenuBooking)
	manageGuard := auth.RequireMenu(resolver, models.MenuRooms)

	app.Get(ListPath, bookingGuard, s.List)
	app.Get(SearchPath, bookingGuard, s.Search)
	app.Post(CreatePath, manageGuard, s.Create)
	app.Put(UpdatePath, manageGuard, s.Update)
	app.Delete(DeletePath, manageGuard, s.Delete)

	return nil
}

// List returns every room with its reference data.
func (s *Service) List(c *fiber.Ctx) error {
	rooms, err := catalog.Rooms(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query rooms failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load rooms")
	}

	return c.JSON(rooms)
}

// Search returns available rooms matching the booking filters. Capacity
// is matched inclusively, so a search for 8 participants returns rooms
// seating exactly 8.
func (s *Service) Search(c *fiber.Ctx) error {
	buildingID := c.QueryInt("building", 0)
	floorID := c.QueryInt("floor", 0)
	participants := c.QueryInt("participants", 1)

	rooms, err := catalog.SearchRooms(s.db, uint(buildingID), uint(floorID), participants)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidParticipants) {
			return handler.Fail(c, fiber.StatusBadRequest, err.Error())
		}

		log.Error().Err(err).Msg("room search failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to search rooms")
	}

	return c.JSON(rooms)
}

type roomInput struct {
	Name       string `json:"name"         validate:"required,max=100"`
	BuildingID uint   `json:"building_id"  validate:"required"`
	FloorID    uint   `json:"floor_id"     validate:"required"`
	RoomTypeID uint   `json:"room_type_id" validate:"required"`
	StatusID   uint   `json:"status_id"    validate:"required"`
	Capacity   int    `json:"capacity"     validate:"required,gt=0"`
}

// Create adds a new room.
func (s *Service) Create(c *fiber.Ctx) error {
	var in roomInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	room := models.Room{
		Name:       in.Name,
		BuildingID: in.BuildingID,
		FloorID:    in.FloorID,
		RoomTypeID: in.RoomTypeID,
		StatusID:   in.StatusID,
		Capacity:   in.Capacity,
	}

	if err := s.db.Create(&room).Error; err != nil {
		log.Error().Err(err).Msg("create room failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create room")
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

// Update modifies a room.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid room id")
	}

	var in roomInput
	if err = c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	var room models.Room
	if err = s.db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "room not found")
		}

		log.Error().Err(err).Msg("load room failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load room")
	}

	room.Name = in.Name
	room.BuildingID = in.BuildingID
	room.FloorID = in.FloorID
	room.RoomTypeID = in.RoomTypeID
	room.StatusID = in.StatusID
	room.Capacity = in.Capacity

	if err = s.db.Save(&room).Error; err != nil {
		log.Error().Err(err).Msg("update room failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update room")
	}

	return c.JSON(room)
}

// Delete removes a room. Rooms are hard-deleted; their past reservations
// keep the room id for history.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid room id")
	}

	result := s.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("delete room failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete room")
	}

	if result.RowsAffected == 0 {
		return handler.Fail(c, fiber.StatusNotFound, "room not found")
	}

	return handler.Message(c, "room deleted")
}
