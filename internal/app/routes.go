package app

import (
	"github.com/adi-1080/notesapp/internal/auth"
	"github.com/adi-1080/notesapp/internal/cache"
	"github.com/adi-1080/notesapp/internal/config"
	"github.com/adi-1080/notesapp/internal/handlers"
	"github.com/adi-1080/notesapp/internal/repo"
	"github.com/adi-1080/notesapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	codec := auth.NewCodec(cfg.Auth.Secret, cfg.Auth.TokenTTL())
	userRepo := repo.NewPGUserRepo(db)
	authSvc := service.NewAuthService(userRepo, codec)
	authHandler := handlers.NewAuthHandler(authSvc)
	registerAuthRoutes(api, authHandler)

	guard := auth.NewGuard(codec, userRepo)
	protected := api.Group("", auth.RequireAuth(guard))

	userHandler := handlers.NewUserHandler()
	registerUserRoutes(protected, userHandler)

	noteRepo := repo.NewPGNoteRepo(db)
	noteCache := cache.NewNoteCache(rdb, cfg.Redis.DefaultTTL.Duration())
	noteSvc := service.NewNoteService(noteRepo, noteCache)
	noteHandler := handlers.NewNoteHandler(noteSvc)
	registerNoteRoutes(protected, noteHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Notes API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.GET("/users/me", h.Me)
}

func registerNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	api.POST("/notes", h.Create)
	api.GET("/notes", h.List)
	api.GET("/notes/search", h.Search)
	api.GET("/notes/:id", h.GetByID)
	api.PUT("/notes/:id", h.Replace)
	api.PATCH("/notes/:id", h.Update)
	api.DELETE("/notes/:id", h.Delete)
}
