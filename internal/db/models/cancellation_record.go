package models

import "time"

// CancellationRecord is the append-only audit entry written when a
// reservation is cancelled. It is created in the same transaction as the
// status transition, so a cancelled reservation always has exactly one.
type CancellationRecord struct {
	ID            uint64      `gorm:"primaryKey" json:"id"`
	ReservationID uint64      `gorm:"not null;index" json:"reservation_id"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID" json:"-"`
	// Reason is free text; self-service cancellations use a default reason.
	Reason string `gorm:"size:255;not null" json:"reason"`
	// ActorSSN is the employee who performed the cancellation. For admin
	// cancellations this differs from the reservation's reserver.
	ActorSSN string `gorm:"size:20;not null" json:"actor_ssn"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the database table name for the CancellationRecord model.
func (CancellationRecord) TableName() string {
	return "cancellation_records"
}
