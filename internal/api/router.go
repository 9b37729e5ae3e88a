package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/counselling-appointment/booking-system/internal/api/handler"
	"github.com/counselling-appointment/booking-system/internal/api/middleware"
	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
	"github.com/counselling-appointment/booking-system/internal/core/service"
	mongodb "github.com/counselling-appointment/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/counselling-appointment/booking-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, mail ports.MailDispatcher, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("counselling"))
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	slotRepo := mongodb.NewSlotRepository(db)
	holidayRepo := mongodb.NewHolidayRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	tokens := redisdb.NewVerificationStore(rdb)

	authService := service.NewAuthService(authRepo, tokens, mail, log, jwtSecret, 24*time.Hour)
	scheduleService := service.NewScheduleService(slotRepo, holidayRepo, log)
	bookingService := service.NewBookingService(slotRepo, holidayRepo, log)
	adminService := service.NewAdminService(slotRepo, holidayRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService, scheduleService)
	adminHandler := handler.NewAdminHandler(adminService, scheduleService)

	authMW := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify)

	// --- Booking surface (any authenticated role may look at the week) ---
	e.GET("/schedule", bookingHandler.Week, authMW)

	appointments := e.Group("/appointments", authMW,
		middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	appointments.GET("", bookingHandler.Upcoming)
	appointments.POST("", bookingHandler.Book)
	appointments.DELETE("/:date/:slot", bookingHandler.Cancel)

	// --- Admin moderation surface ---
	admin := e.Group("/admin", authMW, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/schedule", adminHandler.Week)
	admin.POST("/slots/:date/:slot/block", adminHandler.Block)
	admin.DELETE("/slots/:date/:slot", adminHandler.UnblockOrCancel)
	admin.PUT("/slots/:date/:slot/session", adminHandler.CompleteSession)
	admin.POST("/holidays/:date", adminHandler.MarkHoliday)
	admin.DELETE("/holidays/:date", adminHandler.UnmarkHoliday)
	admin.GET("/export", adminHandler.Export)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
