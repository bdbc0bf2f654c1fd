package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hanuiwon/clinic-api/config"
	"github.com/hanuiwon/clinic-api/controllers"
	"github.com/hanuiwon/clinic-api/middleware"
	"github.com/hanuiwon/clinic-api/repositories"
	"github.com/hanuiwon/clinic-api/sessions"
	"github.com/hanuiwon/clinic-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *mongo.Database, store sessions.Store) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Last-Page"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authController := controllers.NewAuthController(repositories.NewUserRepository(db), store, sessionTTL)
	postController := controllers.NewPostController(repositories.NewPostRepository(db))
	counsellingController := controllers.NewCounsellingController(repositories.NewCounsellingRepository(db))
	reservationController := controllers.NewReservationController(repositories.NewReservationRepository(db))

	loginRequired := middleware.LoginRequired(store)
	guestOnly := middleware.GuestOnly(store)
	checkID := middleware.CheckObjectID()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", guestOnly, authController.Signup)
	authGroup.POST("/login", guestOnly, authController.Login)
	authGroup.POST("/logout", loginRequired, authController.Logout)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.List)
	postsGroup.GET("/url", postController.ReadByURL)
	postsGroup.GET("/:id", checkID, postController.Read)
	postsGroup.POST("", loginRequired, postController.Create)
	postsGroup.PATCH("/:id", loginRequired, checkID, postController.Update)
	postsGroup.DELETE("/:id", loginRequired, checkID, postController.Delete)

	counsellingsGroup := api.Group("/online-counsellings")
	counsellingsGroup.GET("", counsellingController.List)
	counsellingsGroup.GET("/:id", checkID, counsellingController.Read)
	counsellingsGroup.POST("", loginRequired, counsellingController.Create)
	counsellingsGroup.POST("/:id/comments", loginRequired, checkID, counsellingController.WriteComment)
	counsellingsGroup.PATCH("/:id", loginRequired, checkID, counsellingController.Update)
	counsellingsGroup.DELETE("/:id", loginRequired, checkID, counsellingController.Delete)

	// Reservation writes are intentionally open; the booking form is public.
	reservationsGroup := api.Group("/reservations")
	reservationsGroup.GET("", reservationController.List)
	reservationsGroup.GET("/:id", checkID, reservationController.Read)
	reservationsGroup.POST("", reservationController.Create)
	reservationsGroup.PATCH("/:id", checkID, reservationController.Update)
	reservationsGroup.DELETE("/:id", checkID, reservationController.Delete)

	return r
}
