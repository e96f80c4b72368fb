// Package booking implements the reservation lifecycle: creation with
// conflict detection, self-service and admin cancellation, and listing
// with derived display status.
package booking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

// DefaultCancelReason is recorded when a reserver cancels without giving one.
const DefaultCancelReason = "cancelled by reserver"

// CreateRequest carries the validated inputs for a new reservation.
type CreateRequest struct {
	BookingDate time.Time
	StartTime   time.Time
	EndTime     time.Time
	RoomID      uint
	ReserverSSN string
}

// Engine executes reservation operations against the shared store.
// Creation for a given room is serialized through a per-room mutex so two
// concurrent requests for overlapping windows cannot both succeed.
type Engine struct {
	db  *gorm.DB
	now func() time.Time

	mu        sync.Mutex
	roomLocks map[uint]*sync.Mutex
}

// NewEngine creates a booking engine using the wall clock.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:        db,
		now:       time.Now,
		roomLocks: make(map[uint]*sync.Mutex),
	}
}

// WithClock overrides the engine clock. Used by tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) roomLock(roomID uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		e.roomLocks[roomID] = l
	}

	return l
}

// Create validates the request, rejects overlapping windows and persists
// the reservation with status Booked and a fresh access token.
func (e *Engine) Create(req CreateRequest) (*models.Reservation, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeWindow
	}

	if !sameDay(req.StartTime, req.EndTime) || !sameDay(req.BookingDate, req.StartTime) {
		return nil, ErrInvalidTimeWindow
	}

	lock := e.roomLock(req.RoomID)
	lock.Lock()
	defer lock.Unlock()

	reservation := models.Reservation{
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		RoomID:      req.RoomID,
		ReserverSSN: req.ReserverSSN,
		Status:      models.StatusBooked,
		AccessToken: NewAccessToken(),
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}

			return fmt.Errorf("failed to load room: %w", err)
		}

		var reserver models.Employee
		if err := tx.Where("ssn = ?", req.ReserverSSN).First(&reserver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReserverNotFound
			}

			return fmt.Errorf("failed to load reserver: %w", err)
		}

		// Overlap check on the half-open window [start, end). Serialized by
		// the per-room lock, so check-then-insert is race free.
		var overlapping int64

		err := tx.Model(&models.Reservation{}).
			Where("room_id = ?", req.RoomID).
			Where("status <> ?", models.StatusCancelled).
			Where("start_time < ? AND end_time > ?", req.EndTime, req.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to check for conflicts: %w", err)
		}

		if overlapping > 0 {
			return ErrRoomTimeConflict
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// return the persisted row joined with display fields
	if err := e.db.Preload("Room").Preload("Reserver").First(&reservation, reservation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}

	return &reservation, nil
}

// CancelAsOwner cancels a reservation on behalf of its reserver. It
// succeeds iff a non-cancelled reservation with the id exists and belongs
// to the reserver; the status flip and the audit record are written in
// one transaction. An empty reason falls back to DefaultCancelReason.
func (e *Engine) CancelAsOwner(reservationID uint64, reserverSSN, reason string) error {
	if reason == "" {
		reason = DefaultCancelReason
	}

	return e.cancel(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ? AND reserver_ssn = ?", reservationID, reserverSSN)
	}, reserverSSN, reason)
}

// CancelAsAdmin cancels a reservation by (id, room) without an ownership
// check. Routes using it must be gated on the admin history menu.
func (e *Engine) CancelAsAdmin(reservationID uint64, roomID uint, actorSSN string) error {
	return e.cancel(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ? AND room_id = ?", reservationID, roomID)
	}, actorSSN, "cancelled by administrator")
}

func (e *Engine) cancel(scope func(*gorm.DB) *gorm.DB, actorSSN, reason string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation

		err := scope(tx).
			Where("status <> ?", models.StatusCancelled).
			First(&reservation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}

		if err != nil {
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		err = tx.Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("status", models.StatusCancelled).Error
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		record := models.CancellationRecord{
			ReservationID: reservation.ID,
			Reason:        reason,
			ActorSSN:      actorSSN,
		}

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to write cancellation record: %w", err)
		}

		return nil
	})
}

// ListForReserver returns all reservations of a reserver, most recent
// first (booking date descending, then start time descending).
func (e *Engine) ListForReserver(reserverSSN string) ([]models.Reservation, error) {
	var reservations []models.Reservation

	err := e.db.
		Preload("Room").
		Where("reserver_ssn = ?", reserverSSN).
		Order("booking_date DESC").
		Order("start_time DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// ListAll returns every reservation joined with room and reserver for the
// admin history view.
func (e *Engine) ListAll() ([]models.Reservation, error) {
	var reservations []models.Reservation

	err := e.db.
		Preload("Room").
		Preload("Reserver").
		Order("booking_date DESC").
		Order("start_time DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// DisplayStatus derives the user-facing status of a reservation using the
// engine clock.
func (e *Engine) DisplayStatus(r *models.Reservation) DisplayStatus {
	return DeriveDisplayStatus(r, e.now())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
