package main

import (
	"log"

	"hotelpms/config"
	"hotelpms/controllers"
	"hotelpms/jobs"
	"hotelpms/middleware"
	"hotelpms/policy"
	"hotelpms/routes"
	"hotelpms/services"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	appLogger := logger.NewFromEnv("hotelpms")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := config.InitApp(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	clock := services.SystemClock{Location: cfg.Location}

	var cache services.Cache = services.NopCache{}
	if app.Redis != nil {
		cache = services.NewRedisCache(app.Redis)
	}

	notifiers := notification.MultiService{notification.NewMelodyService(app.Melody)}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaService := notification.NewKafkaService(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaService.Close()
		notifiers = append(notifiers, kafkaService)
	}

	pricing := services.NewPricingEngine(app.Store, services.PricingOptions{
		TaxRate:      cfg.TaxRate,
		ExtraBedRate: cfg.ExtraBedRate,
	})
	references, err := services.NewReferenceGenerator(cfg.BookingRefMaxAttempts, 1)
	if err != nil {
		log.Fatalf("Failed to initialize booking reference generator: %v", err)
	}

	facade, err := services.NewBookingFacade(services.BookingFacadeOptions{
		Store:        app.Store,
		Logger:       appLogger,
		Clock:        clock,
		Availability: services.NewAvailabilityChecker(app.Store),
		Pricing:      pricing,
		Guests:       services.NewGuestResolver(appLogger),
		Billing:      services.NewBillingService(app.Store, pricing, clock, appLogger),
		References:   references,
		Notifier:     notifiers,
		Cache:        cache,
		SystemActor:  cfg.SystemActorID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize booking facade: %v", err)
	}

	var uploader services.AttachmentUploader
	if app.Cloudinary != nil {
		uploader = services.NewCloudinaryUploader(app.Cloudinary, "")
	}

	jobs.SetArrivalsMarker(facade)
	if err := jobs.InitCronJobs(app.Cron, cfg.ArrivalsCron, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer app.Cron.Stop()

	config.InitWebSocket(app.Router, app.Melody, appLogger)

	auth := middleware.NewAuthenticator(cfg.JWTSecret, policy.NewStaticChecker(policy.DefaultRules()))
	routes.SetupRoutes(app.Router, auth, routes.Controllers{
		Inventory: controllers.NewInventoryController(
			services.NewInventoryService(app.Store, cache, notifiers, clock, appLogger),
			services.NewAvailabilityChecker(app.Store),
		),
		Offers: controllers.NewOfferController(services.NewOfferService(app.Store)),
		Guests: controllers.NewGuestController(services.NewGuestService(app.Store)),
		Reservations: controllers.NewReservationController(controllers.ReservationControllerOptions{
			Facade:   facade,
			Uploader: uploader,
			Logger:   appLogger,
		}),
	})

	appLogger.Info("Server starting on port %s...", cfg.Port)
	if err := app.Router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
