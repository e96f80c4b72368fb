// Package session wraps the fiber session store and the identity payload
// kept per logged-in employee.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"
)

// Store is the global session store instance.
var Store *session.Store

// Identity is the session identity established at login. It carries the
// role (position) and the resolved menu grants consumed by the access
// middleware; it is always passed explicitly, never ambient state.
type Identity struct {
	SSN          string   `json:"ssn"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	PositionID   uint     `json:"position_id"`
	Position     string   `json:"position"`
	DepartmentID uint     `json:"department_id"`
	Department   string   `json:"department"`
	Menus        []string `json:"menus"`
}

// Data represents the session data structure.
type Data struct {
	Identity Identity
}

// Valid reports whether the session holds a logged-in identity.
func (s *Data) Valid() bool {
	return s.Identity.SSN != ""
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
