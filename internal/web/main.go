// Package web assembles the fiber application: middleware, handler
// registration and the serve/shutdown lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/auth"
	"github.com/mut-reserve/mutreserve/internal/booking"
	"github.com/mut-reserve/mutreserve/internal/config"
	fiberlogger "github.com/mut-reserve/mutreserve/internal/logger/adapter/fiber"
	"github.com/mut-reserve/mutreserve/internal/mailer"
	accesshandler "github.com/mut-reserve/mutreserve/internal/web/handler/access"
	bookinghandler "github.com/mut-reserve/mutreserve/internal/web/handler/booking"
	cataloghandler "github.com/mut-reserve/mutreserve/internal/web/handler/catalog"
	contacthandler "github.com/mut-reserve/mutreserve/internal/web/handler/contact"
	loginhandler "github.com/mut-reserve/mutreserve/internal/web/handler/login"
	membershandler "github.com/mut-reserve/mutreserve/internal/web/handler/members"
	roomshandler "github.com/mut-reserve/mutreserve/internal/web/handler/rooms"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	resolver     *auth.Resolver
	engine       *booking.Engine
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT/SIGTERM and drains before stopping.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: report not-alive first so the
	// LB removes this pod from active targets before connections drop.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let LB remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// request access log
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log}))

	resolver := auth.NewResolver(db)
	gate := auth.NewGate(db, resolver)
	engine := booking.NewEngine(db)
	contactMailer := mailer.New(cfg.SMTP)

	service := &Service{
		cfg:      cfg,
		App:      app,
		db:       db,
		resolver: resolver,
		engine:   engine,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes with menu checks)
	mustInit(loginhandler.Handler.Init(app, cfg, db, gate))
	mustInit(cataloghandler.Handler.Init(app, cfg, db))
	mustInit(membershandler.Handler.Init(app, cfg, db, resolver))
	mustInit(roomshandler.Handler.Init(app, cfg, db, resolver))
	mustInit(bookinghandler.Handler.Init(app, cfg, db, engine, resolver))
	mustInit(accesshandler.Handler.Init(app, cfg, db, resolver))
	mustInit(contacthandler.Handler.Init(app, cfg, db, resolver, contactMailer))

	// liveness probe for the load balancer
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return service
}

func mustInit(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("handler init failed")
	}
}
