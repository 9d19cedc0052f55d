package router

import (
	"time"

	"github.com/conduit-dev/conduit/internal/auth"
	"github.com/conduit-dev/conduit/internal/config"
	"github.com/conduit-dev/conduit/internal/handlers"
	"github.com/conduit-dev/conduit/internal/middleware"
	"github.com/conduit-dev/conduit/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 30 * time.Second

func NewRouter(cfg *config.Config, tokens *auth.TokenService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins(cfg.ClientURL),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestTimeout(requestTimeout))
	r.Use(middleware.ResolveUser(tokens))

	users := handlers.NewUsersHandler(tokens)
	articles := handlers.NewArticlesHandler()
	profiles := handlers.NewProfilesHandler()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/users", users.Register)
		api.POST("/users/login", users.Login)

		user := api.Group("/user", middleware.AuthRequired())
		{
			user.GET("", users.Current)
			user.PUT("", users.Update)
		}

		api.GET("/profiles/:username", profiles.Get)

		follow := api.Group("/profiles/:username/follow", middleware.AuthRequired())
		{
			follow.POST("", profiles.Follow)
			follow.DELETE("", profiles.Unfollow)
		}

		api.GET("/articles", articles.List)
		api.GET("/articles/feed", middleware.AuthRequired(), articles.Feed)
		api.POST("/articles", middleware.AuthRequired(), articles.Create)
		api.GET("/articles/:slug", articles.Get)
		api.PUT("/articles/:slug", middleware.AuthRequired(), articles.Update)
		api.DELETE("/articles/:slug", middleware.AuthRequired(), articles.Delete)
		api.POST("/articles/:slug/favorite", middleware.AuthRequired(), articles.Favorite)
		api.DELETE("/articles/:slug/favorite", middleware.AuthRequired(), articles.Unfavorite)

		api.GET("/tags", articles.Tags)
	}

	return r
}
