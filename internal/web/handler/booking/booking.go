// Package booking provides the reservation endpoints: create, list,
// self-service cancel and the admin cancel/history views.
package booking

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	bookingengine "github.com/mut-reserve/mutreserve/internal/booking"
	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/web/handler"
)

const (
	// CreatePath creates a reservation.
	CreatePath = "/book-room"
	// ListPath lists reservations for a requester.
	ListPath = "/user-bookings/:ssn"
	// CancelPath is the self-service cancel (ownership-checked).
	CancelPath = "/cancel-booking"
	// AdminCancelPath is the admin cancel by reservation id and room.
	AdminCancelPath = "/cancel/:reserverId/:cfrNum"
	// HistoryPath lists every reservation for the admin view.
	HistoryPath = "/history"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// reservationView is a reservation plus the state derived at read time.
type reservationView struct {
	models.Reservation
	DisplayStatus string `json:"display_status"`
	QRPayload     string `json:"qr_payload"`
}

// Service provides the reservation handlers.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	engine    *bookingengine.Engine
	resolver  *auth.Resolver
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind their menu grants.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, engine *bookingengine.Engine, resolver *auth.Resolver) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = engine
	s.resolver = resolver
	s.validator = validator.New()

	app.Post(CreatePath, auth.RequireMenu(resolver, models.MenuBooking), s.Create)
	app.Get(ListPath, auth.RequireSession(), s.ListForReserver)
	app.Post(CancelPath, auth.RequireMenu(resolver, models.MenuCancel), s.Cancel)
	app.Delete(AdminCancelPath, auth.RequireMenu(resolver, models.MenuHistory), s.AdminCancel)
	app.Get(HistoryPath, auth.RequireMenu(resolver, models.MenuHistory), s.History)

	return nil
}

// Create books a room for the logged-in employee. Date and times arrive
// as "2006-01-02" and "15:04" strings; the window must sit on one day.
func (s *Service) Create(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var in struct {
		RoomID      uint   `json:"room_id"      validate:"required"`
		BookingDate string `json:"booking_date" validate:"required"`
		StartTime   string `json:"start_time"   validate:"required"`
		EndTime     string `json:"end_time"     validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	day, err := time.ParseInLocation(dateLayout, in.BookingDate, time.Local)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", "booking_date: expected "+dateLayout)
	}

	start, err := onDay(day, in.StartTime)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", "start_time: expected "+timeLayout)
	}

	end, err := onDay(day, in.EndTime)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", "end_time: expected "+timeLayout)
	}

	reservation, err := s.engine.Create(bookingengine.CreateRequest{
		BookingDate: day,
		StartTime:   start,
		EndTime:     end,
		RoomID:      in.RoomID,
		ReserverSSN: identity.SSN,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingengine.ErrInvalidTimeWindow):
			return handler.Fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, bookingengine.ErrRoomNotFound),
			errors.Is(err, bookingengine.ErrReserverNotFound):
			return handler.Fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, bookingengine.ErrRoomTimeConflict):
			return handler.Fail(c, fiber.StatusConflict, err.Error())
		}

		log.Error().Err(err).Msg("create reservation failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to book room")
	}

	return c.Status(fiber.StatusCreated).JSON(s.view(reservation))
}

// ListForReserver returns the reservations of one requester. Employees
// see their own; viewing another requester needs the history menu.
func (s *Service) ListForReserver(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ssn := c.Params("ssn")
	if ssn != identity.SSN {
		permitted, err := s.resolver.IsPermitted(identity.PositionID, models.MenuHistory)
		if err != nil {
			log.Error().Err(err).Msg("failed to check menu grant")

			return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
		}

		if !permitted {
			return handler.Fail(c, fiber.StatusForbidden, "forbidden")
		}
	}

	reservations, err := s.engine.ListForReserver(ssn)
	if err != nil {
		log.Error().Err(err).Msg("list reservations failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load bookings")
	}

	return c.JSON(s.views(reservations))
}

// Cancel cancels a reservation owned by the logged-in employee. A
// reservation that does not exist and one not owned by the requester are
// indistinguishable in the response.
func (s *Service) Cancel(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var in struct {
		ReservationID uint64 `json:"reserver_id" validate:"required"`
		Reason        string `json:"reason"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.FailValidation(c, err)
	}

	if err := s.engine.CancelAsOwner(in.ReservationID, identity.SSN, in.Reason); err != nil {
		if errors.Is(err, bookingengine.ErrNotFoundOrUnauthorized) {
			return handler.Fail(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Msg("cancel reservation failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to cancel booking")
	}

	return handler.Message(c, "booking cancelled")
}

// AdminCancel cancels any reservation matched by id and room, without an
// ownership check.
func (s *Service) AdminCancel(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	reservationID, err := strconv.ParseUint(c.Params("reserverId"), 10, 64)
	if err != nil || reservationID == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid reservation id")
	}

	roomID, err := strconv.Atoi(c.Params("cfrNum"))
	if err != nil || roomID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid room id")
	}

	if err = s.engine.CancelAsAdmin(reservationID, uint(roomID), identity.SSN); err != nil {
		if errors.Is(err, bookingengine.ErrNotFoundOrUnauthorized) {
			return handler.Fail(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Msg("admin cancel failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to cancel booking")
	}

	return handler.Message(c, "booking cancelled")
}

// History returns every reservation, newest booking day first.
func (s *Service) History(c *fiber.Ctx) error {
	reservations, err := s.engine.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("list history failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load history")
	}

	return c.JSON(s.views(reservations))
}

func (s *Service) view(r *models.Reservation) reservationView {
	return reservationView{
		Reservation:   *r,
		DisplayStatus: string(s.engine.DisplayStatus(r)),
		QRPayload:     bookingengine.QRPayload(r),
	}
}

func (s *Service) views(reservations []models.Reservation) []reservationView {
	out := make([]reservationView, 0, len(reservations))
	for i := range reservations {
		out = append(out, s.view(&reservations[i]))
	}

	return out
}

func onDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
