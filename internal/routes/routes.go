package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clients-api/internal/auth"
	"github.com/BruksfildServices01/clients-api/internal/config"
	"github.com/BruksfildServices01/clients-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clients-api/internal/infra/repository"
	"github.com/BruksfildServices01/clients-api/internal/metrics"
	"github.com/BruksfildServices01/clients-api/internal/middleware"
	ucAuth "github.com/BruksfildServices01/clients-api/internal/usecase/auth"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

// RegisterRoutes wires repositories, use cases and handlers onto r.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		metrics.Middleware(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	v := validation.MustNew()

	cityRepo := infraRepo.NewCityGormRepository(db, log)
	clientRepo := infraRepo.NewClientGormRepository(db, log)
	userRepo := infraRepo.NewUserGormRepository(db, hasher, log)

	// ======================================================
	// USE CASES
	// ======================================================
	signInUC := ucAuth.NewSignIn(userRepo, hasher, tokens)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, signInUC)
	meHandler := handlers.NewMeHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	cityHandler := handlers.NewCityHandler(cityRepo)
	clientHandler := handlers.NewClientHandler(clientRepo)
	healthHandler := handlers.NewHealthHandler(db)

	idParam := validation.Params[handlers.IDParams]()

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := r.Group("/")
	limited.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
	{
		limited.POST("/sign-up", v.Gate(validation.Body[handlers.UserRequest]()), authHandler.SignUp)
		limited.POST("/sign-in", v.Gate(validation.Body[handlers.SignInRequest]()), authHandler.SignIn)
	}

	// ------------------------------
	// PRIVATE
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(tokens))
	{
		secured.GET("/me", meHandler.GetMe)

		secured.GET("/users", v.Gate(validation.Query[handlers.UserListParams]()), userHandler.List)
		secured.GET("/users/:id", v.Gate(idParam), userHandler.GetByID)
		secured.PUT("/users/:id", v.Gate(validation.Body[handlers.UserRequest](), idParam), userHandler.UpdateByID)

		secured.POST("/cities", v.Gate(validation.Body[handlers.CityRequest]()), cityHandler.Create)
		secured.GET("/cities", v.Gate(validation.Query[handlers.CityListParams]()), cityHandler.List)
		secured.GET("/cities/:id", v.Gate(idParam), cityHandler.GetByID)
		secured.PUT("/cities/:id", v.Gate(validation.Body[handlers.CityRequest](), idParam), cityHandler.UpdateByID)
		secured.DELETE("/cities/:id", v.Gate(idParam), cityHandler.DeleteByID)

		secured.POST("/clients", v.Gate(validation.Body[handlers.ClientRequest]()), clientHandler.Create)
		secured.GET("/clients", v.Gate(validation.Query[handlers.ClientListParams]()), clientHandler.List)
		secured.GET("/clients/:id", v.Gate(idParam), clientHandler.GetByID)
		secured.PUT("/clients/:id", v.Gate(validation.Body[handlers.ClientRequest](), idParam), clientHandler.UpdateByID)
		secured.DELETE("/clients/:id", v.Gate(idParam), clientHandler.DeleteByID)
	}
}
