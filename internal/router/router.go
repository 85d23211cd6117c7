package router

import (
	"time"

	"github.com/Smirnov-studio/property-store/internal/config"
	"github.com/Smirnov-studio/property-store/internal/handler"
	"github.com/Smirnov-studio/property-store/internal/middleware"
	"github.com/Smirnov-studio/property-store/internal/repository"
	"github.com/Smirnov-studio/property-store/internal/service"
	"github.com/Smirnov-studio/property-store/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	complexRepo := repository.NewComplexRepository(db, cfg.AmenityPolicy == "strict")
	priceHistoryRepo := repository.NewPriceHistoryRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	complexSvc := service.NewComplexService(complexRepo, rdb,
		time.Duration(cfg.DetailCacheTTLMins)*time.Minute)

	// Worker dispatcher — calculation history is written off the request path
	dispatcher := worker.NewDispatcher(rdb)
	calculatorSvc := service.NewCalculatorService(complexRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	complexesH := handler.NewComplexesHandler(complexSvc)
	layoutsH := handler.NewLayoutsHandler(complexSvc)
	calculatorH := handler.NewCalculatorHandler(calculatorSvc)
	priceHistoryH := handler.NewPriceHistoryHandler(priceHistoryRepo)
	amenitiesH := handler.NewAmenitiesHandler(amenityRepo)

	// ── Routes ───────────────────────────────────────────────────────────────
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireRole("admin")

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health(db, rdb))

		auth := api.Group("/auth")
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.GET("/profile", jwtMW, authH.GetProfile)
			auth.PUT("/profile", jwtMW, authH.UpdateProfile)
			auth.PUT("/password", jwtMW, authH.ChangePassword)
		}

		// Public catalog. The static /complexes/calculate segment wins over
		// the :id parameter in Gin's route tree.
		api.GET("/complexes", complexesH.List)
		api.POST("/complexes/calculate", middleware.OptionalJWTAuth(cfg.JWTSecret), calculatorH.Calculate)
		api.GET("/complexes/:id", complexesH.GetByID)
		api.GET("/complexes/:id/price-history", priceHistoryH.ListByComplex)
		api.GET("/amenities", amenitiesH.List)

		// Admin CRUD — valid credential AND admin role
		admin := api.Group("/complexes", jwtMW, adminMW)
		{
			admin.POST("", complexesH.Create)
			admin.PUT("/:id", complexesH.Update)
			admin.DELETE("/:id", complexesH.Delete)
			admin.POST("/:id/layouts", layoutsH.Add)
			admin.DELETE("/:id/layouts/:layoutId", layoutsH.Remove)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
