package v1

import (
	"net/http"
	"time"

	"devhire-backend/config"
	"devhire-backend/internal/delivery/http/middleware"
	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/internal/usecase"
	"devhire-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	ProfileUC   domain.ProfileUsecase
	SearchUC    domain.SearchUsecase
	ShortlistUC domain.ShortlistUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

// newEngine matches routes on the escaped path so a param such as the skill
// "CI%2FCD" stays one segment and reaches the handler unescaped.
func newEngine() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	return r
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := newEngine()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURLs)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	rateLimit := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitRequests,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		RPS:    deps.Config.RateLimitRPS,
		Redis:  redis.Client,
	})

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "Service degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.AuthUC), rateLimit)
	{
		NewProfileHandler(protected, deps.ProfileUC)
		NewSearchHandler(protected, deps.SearchUC)
		NewShortlistHandler(protected, deps.ShortlistUC)
	}

	return r
}
