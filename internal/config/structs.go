package config

import (
	"time"

	"github.com/mut-reserve/mutreserve/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	SMTP      SMTP
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// SMTP holds the settings for the contact-form mail relay.
// Delivery is best effort; the service runs fine without it.
type SMTP struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	// To is the inbox contact-form messages are relayed to.
	To string
}

// Seed controls the records provisioned on an empty database.
type Seed struct {
	// AdminEmail and AdminPassword define the administrator account
	// created when the employee table is empty. There is no hardcoded
	// login bypass; this seeded record is the only admin bootstrap.
	AdminEmail    string
	AdminPassword string
}
