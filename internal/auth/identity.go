package auth

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/web/session"
)

// Gate authenticates employee credentials against the database and
// establishes the session identity. There is no bypass path: the admin
// account is an ordinary seeded employee record.
type Gate struct {
	db       *gorm.DB
	resolver *Resolver
}

// NewGate creates a new identity gate.
func NewGate(db *gorm.DB, resolver *Resolver) *Gate {
	return &Gate{db: db, resolver: resolver}
}

// Authenticate verifies the email/password pair and returns the session
// identity carrying the person key, role, department and resolved menu
// grants. Every failure mode (unknown email, inactive account, wrong
// password) surfaces as ErrInvalidCredentials; the distinction is only
// logged. Password verification is constant-time (argon2id).
func (g *Gate) Authenticate(email, password string) (*session.Identity, error) {
	var employee models.Employee

	err := g.db.
		Preload("Position").
		Preload("Department").
		Preload("Status").
		Where("email = ?", email).
		First(&employee).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Debug().Str("email", email).Msg("login: unknown email")
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}

	if employee.Status.Name != models.EmploymentActive {
		log.Debug().Str("ssn", employee.SSN).Msg("login: inactive account")
		return nil, ErrInvalidCredentials
	}

	if !employee.VerifyPassword(password) {
		log.Debug().Str("ssn", employee.SSN).Msg("login: wrong password")
		return nil, ErrInvalidCredentials
	}

	menus, err := g.resolver.GrantsFor(employee.PositionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menu grants: %w", err)
	}

	return &session.Identity{
		SSN:          employee.SSN,
		FirstName:    employee.FirstName,
		LastName:     employee.LastName,
		Email:        employee.Email,
		PositionID:   employee.PositionID,
		Position:     employee.Position.Name,
		DepartmentID: employee.DepartmentID,
		Department:   employee.Department.Name,
		Menus:        menus,
	}, nil
}
