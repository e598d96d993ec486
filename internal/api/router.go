package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/evolfitness/booking-system/docs"
	"github.com/evolfitness/booking-system/internal/api/handler"
	"github.com/evolfitness/booking-system/internal/api/middleware"
	"github.com/evolfitness/booking-system/internal/core/domain"
	"github.com/evolfitness/booking-system/internal/core/service"
	mongostore "github.com/evolfitness/booking-system/internal/infrastructure/db/mongo"
	redisstore "github.com/evolfitness/booking-system/internal/infrastructure/db/redis"
	"github.com/evolfitness/booking-system/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, images *storage.ImageStore, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	accountRepo := mongostore.NewAccountRepository(db)
	classRepo := mongostore.NewClassRepository(db)
	classCache := redisstore.NewClassListCache(rdb)

	accountService := service.NewAccountService(accountRepo, jwtSecret, 24*time.Hour, log)
	classService := service.NewClassService(classRepo, accountRepo, images, classCache, log)
	enrollmentService := service.NewEnrollmentService(classRepo, classCache, log)

	accountHandler := handler.NewAccountHandler(accountService)
	classHandler := handler.NewClassHandler(classService, enrollmentService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Account routes ---
	e.POST("/registro", accountHandler.Register)
	e.POST("/login", accountHandler.Login)
	e.GET("/debug/usuarios", accountHandler.UsersOverview, authRequired, adminOnly)

	// --- Class routes ---
	e.GET("/clases", classHandler.List)
	e.GET("/clases/hoy", classHandler.ListToday)
	e.POST("/clases", classHandler.Create, authRequired, adminOnly)
	e.POST("/clases/:idClase/inscribirse", classHandler.Enroll)
	e.GET("/clases/:idClase/inscritos", classHandler.Roster)
	e.GET("/clases/usuario/:usuarioId", classHandler.ForUser)
	e.POST("/clases/:idClase/cancelar-inscripcion", classHandler.Cancel)

	// --- Static uploads ---
	e.Static("/uploads", images.Dir())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
