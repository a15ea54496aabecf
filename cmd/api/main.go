package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/config"
	"alfredoptarigan/offer-tracker/internal/handlers"
	"alfredoptarigan/offer-tracker/internal/repositories"
	"alfredoptarigan/offer-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	cfg.SetupLogger()
	log.Info("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	offerRepo := repositories.NewOfferRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize services
	clock := services.NewSystemClock()
	location := cfg.Location()

	notificationService := services.NewNotificationService(reminderRepo, deviceRepo, clock)
	dispatcher := services.NewNotificationDispatcher(notificationService, cfg.Notification.Timeout)
	scheduler := services.NewReminderScheduler()
	log.WithField("timezone", location.String()).Info("✅ Services initialized successfully")

	// Initialize Notion mirror
	var mirror services.OfferMirror
	if cfg.NotionEnabled() {
		notionMirror := services.NewNotionMirror(cfg.Notion.Token, cfg.Notion.DatabaseID, location)
		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := notionMirror.Ping(pingCtx); err != nil {
			log.WithError(err).Warn("⚠️  Notion database unreachable, mirror disabled")
		} else {
			mirror = notionMirror
			log.Info("✅ Notion mirror initialized successfully")
		}
		cancel()
	} else {
		log.Info("📋 NOTION_TOKEN or NOTION_DB_ID not set, mirror disabled")
	}

	controller := services.NewOfferFormController(
		offerRepo,
		scheduler,
		dispatcher,
		mirror,
		clock,
		location,
	)
	log.Info("✅ Offer controller initialized")

	// Initialize worker
	worker := services.NewWorker(
		reminderRepo,
		services.NewLogSender(),
		clock,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
	)

	// Start worker
	ctx, stopWorker := context.WithCancel(context.Background())
	worker.Start(ctx)
	log.Info("✅ Worker started successfully")

	// Initialize Handlers
	offerHandler := handlers.NewOfferHandler(controller)
	deviceHandler := handlers.NewDeviceHandler(deviceRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Offer Tracker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + handlers.OwnerHeader,
	}))

	// Routes
	handlers.SetupRoutes(app.Group("/api/v1"), offerHandler, deviceHandler, profileHandler)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Offer Tracker API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/offers/draft",
				"GET /api/v1/offers",
				"POST /api/v1/offers",
				"GET /api/v1/offers/:id",
				"PUT /api/v1/offers/:id",
				"GET /api/v1/offers/:id/reminder",
				"POST /api/v1/devices",
				"GET /api/v1/profile",
				"PUT /api/v1/profile",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		stopWorker()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
