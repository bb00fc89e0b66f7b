package server

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/config"
	"github.com/ruimfonseca/nightowl/internal/handlers"
	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/push"
	"github.com/ruimfonseca/nightowl/internal/realtime"
	"github.com/ruimfonseca/nightowl/internal/sweeper"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx := context.Background()

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	notifier := push.NewNotifier(db, nil, log)

	go sweeper.New(db, cfg.SweepInterval, log).Run(ctx)

	r := gin.Default()
	r.Use(cors.Default())

	RegisterValidations()
	SetupRoutes(r, db, hub, notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

// RegisterValidations installs the custom binding rules used by the
// request structs.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			return helpers.ValidTimeOfDay(fl.Field().String())
		})
	}
}

// SetupRoutes registers the full HTTP surface. It is exported so handler
// tests can run against the same route table as production.
func SetupRoutes(r *gin.Engine, db *gorm.DB, publisher realtime.Publisher, notifier push.Dispatcher) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.RealtimeMiddleware(publisher))
	r.Use(middleware.NotifierMiddleware(notifier))

	if hub, ok := publisher.(*realtime.Hub); ok {
		r.GET("/ws", hub.ServeWS)
	}

	r.POST("/signup", handlers.Register)
	r.GET("/signin", handlers.SignIn)

	r.GET("/nightclubs", handlers.ListNightclubs)
	r.GET("/nightclubs/:id", handlers.GetNightclub)

	protected := r.Group("/")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/tokenDevice/me", handlers.RegisterDeviceToken)

		protected.GET("/users", handlers.ListUsers)
		protected.PUT("/users/me", handlers.UpdateMe)
		protected.DELETE("/users/me", handlers.DeleteMe)

		events := protected.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.POST("", handlers.CreateEvent)
			events.GET("/:id", handlers.GetEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
			events.PUT("/:id/state", middleware.RequireRoles(models.RoleAdmin, models.RoleEditor), handlers.ChangeEventState)

			events.GET("/likes/me", handlers.ListMyLikedEvents)
			events.GET("/all/likes", handlers.ListAllEventLikes)
			events.POST("/:id/likes", handlers.LikeEvent)
			events.DELETE("/:id/likes", handlers.UnlikeEvent)

			events.GET("/favorites/me", handlers.ListMyFavouriteEvents)
			events.POST("/:id/favourites", handlers.FavouriteEvent)
			events.DELETE("/:id/favourites", handlers.UnfavouriteEvent)
		}

		protected.GET("/comments", handlers.ListComments)
		protected.GET("/comments/:eventId", handlers.ListEventComments)
		protected.POST("/comment/event/:id", handlers.PostComment)
		protected.DELETE("/comment/:id", handlers.DeleteComment)
		protected.GET("/comment/likes", handlers.ListCommentLikes)
		protected.POST("/comment/likes/:id", handlers.LikeComment)
		protected.DELETE("/comment/likes/:id", handlers.UnlikeComment)

		protected.GET("/followers&followings", handlers.ListFollowersAndFollowings)
		protected.POST("/following/:id", handlers.FollowUser)
		protected.DELETE("/following/:id", handlers.Unfollow)
		protected.DELETE("/followers/:id", handlers.RemoveFollower)

		protected.GET("/going", handlers.ListMyGoing)
		protected.POST("/going/:id", handlers.GoToEvent)
		protected.DELETE("/going/:id", handlers.CancelGoing)
		protected.GET("/event/:id/peopleGoing", handlers.ListPeopleGoing)

		protected.GET("/notifications", handlers.ListMyNotifications)
		protected.DELETE("/notifications/:id", handlers.DeleteNotification)
	}

	r.POST("/nightclubs", middleware.JWTAuthMiddleware(), handlers.CreateNightclub)
}
