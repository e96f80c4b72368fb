// Package catalog exposes the read-only reference lookups the booking
// and admin screens populate their dropdowns from.
package catalog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/config"
	catalogdb "github.com/mut-reserve/mutreserve/internal/db/controller/catalog"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
)

const (
	// BuildingsPath lists buildings.
	BuildingsPath = "/buildings"
	// FloorsPath lists floors, optionally scoped to a building.
	FloorsPath = "/floors"
	// RoomTypesPath lists room types.
	RoomTypesPath = "/roomtypes"
	// RoomStatusesPath lists room availability statuses.
	RoomStatusesPath = "/statusrooms"
	// DepartmentsPath lists departments.
	DepartmentsPath = "/departments"
	// PositionsPath lists positions.
	PositionsPath = "/positions"
)

// Service provides the catalog lookup handlers.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Lookups require a session but no specific menu:
// every dashboard section needs them.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	guard := auth.RequireSession()

	app.Get(BuildingsPath, guard, s.Buildings)
	app.Get(FloorsPath, guard, s.Floors)
	app.Get(RoomTypesPath, guard, s.RoomTypes)
	app.Get(RoomStatusesPath, guard, s.RoomStatuses)
	app.Get(DepartmentsPath, guard, s.Departments)
	app.Get(PositionsPath, guard, s.Positions)

	return nil
}

// Buildings returns all buildings.
func (s *Service) Buildings(c *fiber.Ctx) error {
	buildings, err := catalogdb.Buildings(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query buildings failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load buildings")
	}

	return c.JSON(buildings)
}

// Floors returns floors, filtered by ?building= when present.
func (s *Service) Floors(c *fiber.Ctx) error {
	buildingID := c.QueryInt("building", 0)

	floors, err := catalogdb.Floors(s.db, uint(buildingID))
	if err != nil {
		log.Error().Err(err).Msg("query floors failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load floors")
	}

	return c.JSON(floors)
}

// RoomTypes returns all room types.
func (s *Service) RoomTypes(c *fiber.Ctx) error {
	types, err := catalogdb.RoomTypes(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query room types failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load room types")
	}

	return c.JSON(types)
}

// RoomStatuses returns all room availability statuses.
func (s *Service) RoomStatuses(c *fiber.Ctx) error {
	statuses, err := catalogdb.RoomStatuses(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query room statuses failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load room statuses")
	}

	return c.JSON(statuses)
}

// Departments returns all departments.
func (s *Service) Departments(c *fiber.Ctx) error {
	departments, err := catalogdb.Departments(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query departments failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load departments")
	}

	return c.JSON(departments)
}

// Positions returns all positions.
func (s *Service) Positions(c *fiber.Ctx) error {
	positions, err := catalogdb.Positions(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query positions failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load positions")
	}

	return c.JSON(positions)
}
