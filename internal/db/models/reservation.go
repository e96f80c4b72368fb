package models

import "time"

// BookingStatus is the stored reservation state. The numeric codes are the
// canonical mapping the dashboard renders; they never change meaning.
type BookingStatus int

// Stored reservation states.
const (
	StatusBooked          BookingStatus = 1
	StatusNoShow          BookingStatus = 2
	StatusCheckedIn       BookingStatus = 3
	StatusPendingApproval BookingStatus = 4
	StatusCancelled       BookingStatus = 5
)

// String returns the lower-case name of the status.
func (s BookingStatus) String() string {
	switch s {
	case StatusBooked:
		return "booked"
	case StatusNoShow:
		return "noshow"
	case StatusCheckedIn:
		return "checkedin"
	case StatusPendingApproval:
		return "pendingapproval"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Reservation is a room booking. Immutable after creation except for the
// status, which only ever transitions to StatusCancelled. Display state
// beyond the stored status (upcoming, inuse, completed, noshow) is derived
// from the timestamps at read time and never persisted.
type Reservation struct {
	ID uint64 `gorm:"primaryKey" json:"reserver_id"`
	// BookingDate is the calendar day of the booking.
	BookingDate time.Time `gorm:"not null;index" json:"booking_date"`
	// StartTime and EndTime are the wall-clock window on BookingDate.
	// Invariant: StartTime < EndTime.
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	RoomID uint `gorm:"not null;index" json:"room_id"`
	Room   Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	// ReserverSSN references the employee who requested the booking.
	ReserverSSN string   `gorm:"size:20;not null;index" json:"reserver_ssn"`
	Reserver    Employee `gorm:"foreignKey:ReserverSSN;references:SSN" json:"reserver,omitempty"`

	Status BookingStatus `gorm:"not null;default:1" json:"status"`

	// AccessToken is an opaque random string issued at creation. It is a
	// display convenience for the scannable code, not a security credential.
	AccessToken string `gorm:"size:64" json:"access_token"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Reservation model.
func (Reservation) TableName() string {
	return "reservations"
}
