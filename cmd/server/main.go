package main // Entry point package

import (
	"github.com/joho/godotenv"    // optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/vehicle-rental/internal/config"     // internal config loader
	"github.com/iliyamo/vehicle-rental/internal/database"   // database pool
	"github.com/iliyamo/vehicle-rental/internal/handler"    // HTTP handlers
	"github.com/iliyamo/vehicle-rental/internal/logger"     // application logger
	"github.com/iliyamo/vehicle-rental/internal/queue"      // broker consumer
	"github.com/iliyamo/vehicle-rental/internal/repository" // data access layer
	"github.com/iliyamo/vehicle-rental/internal/router"     // route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	log := logger.New()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	bookings := repository.NewBookingRepo(db)
	logs := repository.NewLogRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Deps{
		DB:      db,
		Cfg:     cfg,
		Redis:   rdb,
		Auth:    handler.NewAuthHandler(cfg, users),
		Catalog: handler.NewCatalogHandler(vehicles),
		Booking: handler.NewBookingHandler(bookings),
		Profile: handler.NewProfileHandler(users, bookings),
		Admin:   handler.NewAdminHandler(users, vehicles, bookings, logs, log),
		Upload:  handler.NewUploadHandler(cfg),
	})

	// Background consumer for booking decision events. Best effort: it
	// reconnects forever and never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Errorf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Infof("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
