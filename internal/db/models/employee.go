package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Employee represents a member of staff who can log in and book rooms.
// The SSN is the canonical person key used throughout the booking tables.
// Employees are never hard-deleted; removal flips the employment status
// to "inactive", which also blocks authentication.
type Employee struct {
	// SSN is the unique person key.
	SSN string `gorm:"primaryKey;size:20" json:"ssn"`
	// FirstName is the employee's given name.
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	// LastName is the employee's family name.
	LastName string `gorm:"size:100;not null" json:"last_name"`
	// Email is the login identifier.
	Email string `gorm:"unique;size:255;not null" json:"email"`
	// Password is the Argon2id hashed login secret. Never serialized.
	Password string `gorm:"size:255" json:"-"`
	// DepartmentID references the employee's department.
	DepartmentID uint       `gorm:"not null" json:"department_id"`
	Department   Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"department,omitempty"`
	// PositionID references the employee's position, which doubles as the
	// role for access-menu resolution.
	PositionID uint     `gorm:"not null" json:"position_id"`
	Position   Position `gorm:"foreignKey:PositionID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"position,omitempty"`
	// StatusID references the employment status (active, inactive).
	StatusID uint             `gorm:"not null" json:"status_id"`
	Status   EmploymentStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Employee model.
func (Employee) TableName() string {
	return "employees"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating employee passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the employee's stored hash.
// The comparison is constant-time to prevent timing attacks.
func (e *Employee) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, e.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
