package routes

import (
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/handlers"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/middleware"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/ratelimit"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config, actions *actionlog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.Static("/uploads", cfg.File.UploadPath)

	limiter := ratelimit.NewLimiter()

	authService := services.NewAuthService(db, actions)
	noteService := services.NewNoteService(db, actions)
	profileService := services.NewProfileService(db, cfg, actions)

	authHandler := handlers.NewAuthHandler(authService, actions, cfg)
	noteHandler := handlers.NewNoteHandler(noteService)
	profileHandler := handlers.NewProfileHandler(profileService, noteService)
	adminHandler := handlers.NewAdminHandler(actions, cfg)
	miscHandler := handlers.NewMiscHandler()

	limit := func(bucket string) gin.HandlerFunc {
		return middleware.RateLimit(limiter, bucket, actions)
	}
	auth := middleware.AuthMiddleware(db, cfg)

	// Public pages
	router.GET("/", limit(ratelimit.GeneralHome), miscHandler.Home)
	router.GET("/ping", limit(ratelimit.GeneralPing), miscHandler.Ping)
	router.GET("/health", miscHandler.Health)
	router.GET("/locale/:lang", limit(ratelimit.GeneralLocale), miscHandler.SetLocale)

	// Authentication
	router.POST("/register", limit(ratelimit.AuthRegister), authHandler.Register)
	router.POST("/login", limit(ratelimit.AuthLogin), authHandler.Login)
	router.GET("/logout", auth, limit(ratelimit.AuthLogout), authHandler.Logout)

	// Profile pages
	router.GET("/profile", auth, limit(ratelimit.ProfileView), profileHandler.GetProfile)
	router.POST("/profile", auth, limit(ratelimit.ProfileUpdate), profileHandler.UpdateProfile)
	router.GET("/delete_avatar", auth, limit(ratelimit.ProfileAvatar), profileHandler.DeleteAvatar)

	// Notes API
	api := router.Group("/api")
	api.Use(auth)
	{
		notes := api.Group("/notes")
		{
			notes.GET("", limit(ratelimit.APIGetNotes), noteHandler.GetNotes)
			notes.POST("", limit(ratelimit.APICreateNote), noteHandler.CreateNote)
			notes.GET("/:id", limit(ratelimit.APIGetNotes), noteHandler.GetNote)
			notes.PUT("/:id", limit(ratelimit.APIUpdateNote), noteHandler.UpdateNote)
			notes.DELETE("/:id", limit(ratelimit.APIDeleteNote), noteHandler.DeleteNote)
		}
	}

	// Admin
	admin := router.Group("/admin")
	admin.Use(auth)
	admin.Use(middleware.AdminMiddleware(actions))
	{
		admin.GET("/logs", limit(ratelimit.AdminLogs), adminHandler.DownloadLogs)
	}

	return router
}
