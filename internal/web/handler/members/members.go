// Package members provides CRUD handlers for employee administration.
// The delete route never removes the row: it flips the employment status
// to inactive, which also blocks the employee from logging in.
package members

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
)

const (
	// ListPath lists employees.
	ListPath = "/members"
	// CreatePath creates an employee.
	CreatePath = "/addmembers"
	// UpdatePath updates an employee by SSN.
	UpdatePath = "/updatemembers/:id"
	// DeletePath deactivates an employee by SSN.
	DeletePath = "/deletemembers/:id"
)

// Service provides CRUD operations for employees.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind the members menu grant.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *auth.Resolver) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	guard := auth.RequireMenu(resolver, models.MenuMembers)

	app.Get(ListPath, guard, s.List)
	app.Post(CreatePath, guard, s.Create)
	app.Put(UpdatePath, guard, s.Update)
	app.Delete(DeletePath, guard, s.Delete)

	return nil
}

// List returns all employees joined with department, position and status.
func (s *Service) List(c *fiber.Ctx) error {
	var employees []models.Employee

	err := s.db.
		Preload("Department").
		Preload("Position").
		Preload("Status").
		Order("ssn ASC").
		Find(&employees).Error
	if err != nil {
		log.Error().Err(err).Msg("query employees failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load members")
	}

	return c.JSON(employees)
}

type memberInput struct {
	SSN          string `json:"ssn"           validate:"required,max=20"`
	FirstName    string `json:"first_name"    validate:"required,max=100"`
	LastName     string `json:"last_name"     validate:"required,max=100"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Password     string `json:"password"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	PositionID   uint   `json:"position_id"   validate:"required"`
	StatusID     uint   `json:"status_id"     validate:"required"`
}

// Create adds a new employee. The password is required on create and
// stored as an Argon2id hash.
func (s *Service) Create(c *fiber.Ctx) error {
	var in memberInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	if in.Password == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", "password: failed on required")
	}

	employee := models.Employee{
		SSN:          in.SSN,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     models.HashPassword(in.Password),
		DepartmentID: in.DepartmentID,
		PositionID:   in.PositionID,
		StatusID:     in.StatusID,
	}

	if err := s.db.Create(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return handler.Fail(c, fiber.StatusConflict, "member already exists")
		}

		log.Error().Err(err).Msg("create employee failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create member")
	}

	return c.Status(fiber.StatusCreated).JSON(employee)
}

// Update modifies an employee. The password is rotated only when a new
// one is supplied.
func (s *Service) Update(c *fiber.Ctx) error {
	ssn := c.Params("id")

	var in memberInput

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	in.SSN = ssn

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	var employee models.Employee
	if err := s.db.First(&employee, "ssn = ?", ssn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "member not found")
		}

		log.Error().Err(err).Msg("load employee failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load member")
	}

	employee.FirstName = in.FirstName
	employee.LastName = in.LastName
	employee.Email = in.Email
	employee.DepartmentID = in.DepartmentID
	employee.PositionID = in.PositionID
	employee.StatusID = in.StatusID

	if in.Password != "" {
		employee.Password = models.HashPassword(in.Password)
	}

	if err := s.db.Save(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return handler.Fail(c, fiber.StatusConflict, "email already in use")
		}

		log.Error().Err(err).Msg("update employee failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update member")
	}

	return c.JSON(employee)
}

// Delete deactivates an employee by flipping the employment status to
// inactive. The row is kept so reservation history stays attributable.
func (s *Service) Delete(c *fiber.Ctx) error {
	ssn := c.Params("id")

	var employee models.Employee
	if err := s.db.First(&employee, "ssn = ?", ssn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "member not found")
		}

		log.Error().Err(err).Msg("load employee failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load member")
	}

	var inactive models.EmploymentStatus
	if err := s.db.Where("name = ?", models.EmploymentInactive).First(&inactive).Error; err != nil {
		log.Error().Err(err).Msg("inactive employment status missing")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to deactivate member")
	}

	if err := s.db.Model(&employee).Update("status_id", inactive.ID).Error; err != nil {
		log.Error().Err(err).Msg("deactivate employee failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to deactivate member")
	}

	return handler.Message(c, "member deactivated")
}
