// Package contact provides the contact-form relay endpoint. Delivery is
// best effort: a failed send is logged and the submission still reports
// processed.
package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/mailer"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
)

// Path is the contact-form relay endpoint.
const Path = "/send-email"

// Service provides the contact-form handler.
type Service struct {
	cfg       *config.Config
	mailer    *mailer.Mailer
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the route behind the contact menu grant.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *auth.Resolver, m *mailer.Mailer) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.mailer = m
	s.validator = validator.New()

	app.Post(Path, auth.RequireMenu(resolver, models.MenuContact), s.Post)

	return nil
}

// Post relays the submission to the configured inbox.
func (s *Service) Post(c *fiber.Ctx) error {
	var in struct {
		Name    string `json:"name"    validate:"required,max=200"`
		Email   string `json:"email"   validate:"required,email"`
		Subject string `json:"subject" validate:"required,max=200"`
		Body    string `json:"body"    validate:"required,max=5000"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	err := s.mailer.Send(mailer.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	})
	if err != nil && !errors.Is(err, mailer.ErrDisabled) {
		log.Warn().Err(err).Msg("contact relay failed, submission still accepted")
	}

	return handler.Message(c, "message processed")
}
