package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/suggestion"
)

func New(cfg config.Config, svc *suggestion.Service, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	attachRoutes(r, cfg, svc, rdb)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, svc *suggestion.Service, rdb *redis.Client) {
	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(rdb, []byte(cfg.JWTSecret), cfg.ModeratorToken)
	sugH := NewSuggestions(svc)

	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	v1.Use(RateLimitMiddleware(limiter))
	{
		v1.POST("/auth/login", authH.Login)
		v1.GET("/suggestions/:namespace/:identifier", sugH.Resolve)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.GET("/suggestions/:namespace", sugH.ListByAuthor)
	}
}
