// Package daemon wires the process together: database, migrations, seed
// data, session storage and the web service.
package daemon

import (
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/dsn"
	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/web"
	"github.com/mut-reserve/mutreserve/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves HTTP until a shutdown signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration. It
// refuses to start when the database cannot be reached.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg))

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the grant path relies on.
	db, err := gorm.Open(dbDriver, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Department{},
		&models.Position{},
		&models.EmploymentStatus{},
		&models.Building{},
		&models.Floor{},
		&models.RoomType{},
		&models.RoomStatus{},
		&models.Menu{},
		&models.Employee{},
		&models.Room{},
		&models.AccessGrant{},
		&models.Reservation{},
		&models.CancellationRecord{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err = seed(cfg, db); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	// Fiber session store shares the application database.
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	log.Info().Int("port", cfg.Webserver.Port).Msg("daemon initialized")

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}, nil
}
