package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/domain"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/auth"
	"salonbook/internal/modules/catalog"
	"salonbook/internal/modules/history"
	"salonbook/internal/modules/notification"
	"salonbook/internal/modules/owner"
	"salonbook/internal/modules/reservation"
	"salonbook/internal/modules/schedule"
	"salonbook/internal/modules/updates"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Appointment{},
		&domain.ReservationPointer{},
		&domain.ReservationRequest{},
		&domain.HistoryEntry{},
		&domain.BusinessSettings{},
		&domain.DayOverride{},
		&domain.SalonService{},
		&domain.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db, cfg.Timezone, cfg.Grace)
	scheduleRepo := repository.NewScheduleRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	scheduleService := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	hub := updates.NewHub()
	updatesHandler := updates.NewHandler(hub)

	engine := reservation.NewService(
		reservationRepo,
		scheduleService,
		catalogService,
		userRepo,
		notificationService,
		hub,
		reservation.SystemClock(),
		cfg.Timezone,
		cfg.Grace,
	)
	reservationHandler := reservation.NewHandler(engine)

	ownerService := owner.NewService(reservationRepo, userRepo)
	ownerHandler := owner.NewHandler(ownerService, engine, reservationHandler)

	historyHandler := history.NewHandler(reservationRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	updatesHandler.RegisterRoutes(&r.RouterGroup)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			reservationHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterCustomerRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			historyHandler.RegisterCustomerRoutes(protected)

			ownerGroup := protected.Group("/owner")
			ownerGroup.Use(middleware.OwnerOnly())
			{
				ownerHandler.RegisterRoutes(ownerGroup)
				scheduleHandler.RegisterOwnerRoutes(ownerGroup)
				catalogHandler.RegisterOwnerRoutes(ownerGroup)
				historyHandler.RegisterOwnerRoutes(ownerGroup)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
