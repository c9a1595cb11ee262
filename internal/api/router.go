package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/discgolf/storefront/internal/api/handler"
	"github.com/discgolf/storefront/internal/core/service"
	mongorepo "github.com/discgolf/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/discgolf/storefront/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("discgolf"))

	// --- Dependencies ---
	catalogCache := redisdb.NewCatalogCache(rdb, cacheTTL)

	userRepo := mongorepo.NewUserRepository(db)
	discRepo := mongorepo.NewDiscRepository(db)
	cartRepo := mongorepo.NewCartRepository(db)
	lessonRepo := mongorepo.NewLessonRepository(db)

	authService := service.NewAuthService(userRepo, log)
	discService := service.NewDiscService(discRepo, catalogCache, log)
	cartService := service.NewCartService(cartRepo, discRepo, catalogCache, log)
	lessonService := service.NewLessonService(lessonRepo, log)

	userHandler := handler.NewUserHandler(authService)
	discHandler := handler.NewDiscHandler(discService)
	cartHandler := handler.NewCartHandler(cartService)
	lessonHandler := handler.NewLessonHandler(lessonService)

	// --- User routes ---
	e.GET("/users/:username/login/:password", userHandler.Login)
	e.GET("/users/:username/logout", userHandler.Logout)
	e.POST("/users", userHandler.SignUp)
	e.GET("/users", userHandler.List)
	e.GET("/users/:username", userHandler.Get)
	e.PUT("/users", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Disc routes ---
	e.GET("/discs", discHandler.List)
	e.GET("/discs/", discHandler.SearchByType)
	e.GET("/discs/filter", discHandler.Filter)
	e.GET("/discs/:id", discHandler.Get)
	e.POST("/discs", discHandler.Create)
	e.PUT("/discs", discHandler.Update)
	e.DELETE("/discs/:id", discHandler.Delete)

	// --- Cart routes ---
	e.POST("/carts", cartHandler.Create)
	e.GET("/carts", cartHandler.List)
	e.GET("/carts/", cartHandler.FindByUsername)
	e.GET("/carts/:id", cartHandler.Get)
	e.DELETE("/carts/:id", cartHandler.Delete)
	e.GET("/carts/:username/contents", cartHandler.Contents)
	e.GET("/carts/getCost/:username", cartHandler.Cost)
	e.GET("/carts/getCount/:username", cartHandler.Count)
	e.PUT("/carts/addDisc/:username/:id", cartHandler.AddDisc)
	e.PUT("/carts/removeDisc/:username/:id", cartHandler.RemoveDisc)
	e.PUT("/carts/updateDiscQuantity/:username/:id/:quantity/:mode", cartHandler.UpdateQuantity)
	e.GET("/carts/checkCart/:username", cartHandler.CheckCart)
	e.PUT("/carts/purchase/:username", cartHandler.PurchaseCart)
	e.GET("/carts/checkOne/:username/:id", cartHandler.CheckOne)
	e.PUT("/carts/purchaseOne/:username/:id", cartHandler.PurchaseOne)

	// --- Lesson routes ---
	e.GET("/lessons", lessonHandler.List)
	e.GET("/lessons/dates/", lessonHandler.OnDate)
	e.GET("/lessons/dates", lessonHandler.OnDate)
	e.GET("/lessons/user/:username", lessonHandler.ByUser)
	e.GET("/lessons/:id", lessonHandler.Get)
	e.POST("/lessons", lessonHandler.Create)
	e.PUT("/lessons", lessonHandler.Update)
	e.DELETE("/lessons/:id", lessonHandler.Delete)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
