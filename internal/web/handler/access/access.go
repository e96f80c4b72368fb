// Package access provides the access-grant administration endpoints:
// listing, granting, revoking and replacing the menu set of a position.
package access

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
	// Path is the base path for access-grant administration.
	Path = "/accessmenus"

	// MenusPath lists the grantable menus.
	MenusPath = "/menus"
)

// Service provides access-grant administration.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	resolver  *auth.Resolver
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind the permissions menu grant.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *auth.Resolver) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.resolver = resolver
	s.validator = validator.New()

	guard := auth.RequireMenu(resolver, models.MenuPermissions)

	app.Get(Path, guard, s.List)
	app.Post(Path, guard, s.Grant)
	app.Put(Path+"/:positionId", guard, s.SetGrants)
	app.Delete(Path+"/:id", guard, s.Revoke)
	app.Get(MenusPath, guard, s.Menus)

	return nil
}

// List returns every grant with its position and menu.
func (s *Service) List(c *fiber.Ctx) error {
	grants, err := s.resolver.ListGrants()
	if err != nil {
		log.Error().Err(err).Msg("list grants failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load grants")
	}

	return c.JSON(grants)
}

// Grant adds one position→menu grant. Duplicate pairs are rejected; the
// unique index is the source of truth, not a read-check.
func (s *Service) Grant(c *fiber.Ctx) error {
	var in struct {
		PositionID uint `json:"position_id"`
		MenuID     uint `json:"menu_id"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	grant, err := s.resolver.Grant(in.PositionID, in.MenuID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPositionRequired), errors.Is(err, auth.ErrMenuRequired):
			return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
		case errors.Is(err, auth.ErrGrantExists):
			return handler.Fail(c, fiber.StatusConflict, err.Error())
		}

		log.Error().Err(err).Msg("create grant failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create grant")
	}

	return c.Status(fiber.StatusCreated).JSON(grant)
}

// SetGrants replaces a position's menu set with the given target set.
// Only the difference is written: additions inserted, removals deleted,
// grants already in both sets untouched.
func (s *Service) SetGrants(c *fiber.Ctx) error {
	positionID, err := strconv.Atoi(c.Params("positionId"))
	if err != nil || positionID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid position id")
	}

	var in struct {
		MenuIDs []uint `json:"menu_ids"`
	}

	if err = c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.resolver.SetGrants(uint(positionID), in.MenuIDs); err != nil {
		if errors.Is(err, auth.ErrPositionRequired) {
			return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
		}

		log.Error().Err(err).Msg("set grants failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update grants")
	}

	return handler.Message(c, "grants updated")
}

// Revoke removes a grant by its id.
func (s *Service) Revoke(c *fiber.Ctx) error {
	grantID, err := strconv.Atoi(c.Params("id"))
	if err != nil || grantID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid grant id")
	}

	if err = s.resolver.RevokeByID(uint(grantID)); err != nil {
		if errors.Is(err, auth.ErrGrantNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Msg("revoke grant failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to revoke grant")
	}

	return handler.Message(c, "grant revoked")
}

// Menus returns the grantable menus.
func (s *Service) Menus(c *fiber.Ctx) error {
	menus, err := catalog.Menus(s.db)
	if err != nil {
		log.Error().Err(err).Msg("query menus failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load menus")
	}

	return c.JSON(menus)
}
