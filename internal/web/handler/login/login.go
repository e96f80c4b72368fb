// Package login provides the credential check endpoint and logout.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
	"github.com/mut-reserve/mutreserve/internal/web/session"
)

const (
	// Path is the login endpoint.
	Path = "/login"

	// LogoutPath is the logout endpoint.
	LogoutPath = "/logout"
)

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	gate      *auth.Gate
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the login and logout routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, gate *auth.Gate) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.gate = gate
	s.validator = validator.New()

	app.Post(Path, s.Post)
	app.Post(LogoutPath, s.Logout)

	return nil
}

// Post handles the credential check. Every failure is reported with the
// same message so the response does not reveal whether the email exists.
func (s *Service) Post(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	identity, err := s.gate.Authenticate(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return handler.Fail(c, fiber.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		}

		log.Error().Err(err).Msg("login failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	sessionData := &session.Data{Identity: *identity}
	if err = sessionData.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	cookie := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}
	if s.cfg.DevMode {
		cookie.Secure = false
	}

	c.Cookie(cookie)

	return c.JSON(identity)
}

// Logout drops the server-side session and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies("session"); sessionID != "" {
		if err := session.Store.Storage.Delete(sessionID); err != nil {
			log.Warn().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie("session")

	return handler.Message(c, "logged out")
}
