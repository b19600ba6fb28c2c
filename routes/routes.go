package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/controllers"
	"github.com/binaryash/redbud/middleware"
	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/services"
	"github.com/binaryash/redbud/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, summarizer services.Summarizer) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	manager := string(models.RoleManager)
	trainer := string(models.RoleTrainer)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/token/refresh", controllers.RefreshToken)
		auth.POST("/change-password", middleware.AuthMiddleware(), controllers.ChangePassword)
	}

	users := api.Group("/users")
	{
		users.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		users.GET("", controllers.GetUsers)
		users.GET("/me", controllers.GetMe)
		users.GET("/by_role", middleware.RequireRoles(manager), controllers.GetUsersByRole)
		users.POST("", middleware.RequireRoles(manager), controllers.CreateUser)
		users.GET("/:id", controllers.GetUserDetail)
		users.PUT("/:id", middleware.RequireRoles(manager), controllers.UpdateUser)
		users.PATCH("/:id", middleware.RequireRoles(manager), controllers.UpdateUser)
		users.DELETE("/:id", middleware.RequireRoles(manager), controllers.DeleteUser)
	}

	trainings := api.Group("/trainings")
	{
		trainings.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		trainings.GET("", controllers.GetTrainings)
		trainings.GET("/:id", controllers.GetTrainingDetail)
		trainings.POST("", middleware.RequireRoles(manager), controllers.CreateTraining)
		trainings.PUT("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateTraining)
		trainings.PATCH("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateTraining)
		trainings.DELETE("/:id", middleware.RequireRoles(manager), controllers.DeleteTraining)
		trainings.POST("/:id/assign_employees", middleware.RequireRoles(manager), controllers.AssignEmployees)
		trainings.POST("/:id/assign_trainer", middleware.RequireRoles(manager), controllers.AssignTrainer)
	}

	modules := api.Group("/modules")
	{
		modules.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		modules.GET("", controllers.GetModules)
		modules.GET("/by_training", controllers.GetModulesByTraining)
		modules.GET("/:id", controllers.GetModuleDetail)
		modules.POST("", middleware.RequireRoles(manager, trainer), controllers.CreateModule)
		modules.PUT("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateModule)
		modules.PATCH("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateModule)
		modules.DELETE("/:id", middleware.RequireRoles(manager, trainer), controllers.DeleteModule)
	}

	content := api.Group("/content")
	{
		content.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		content.GET("", controllers.GetContents)
		content.GET("/by_training", controllers.GetContentByTraining)
		content.GET("/by_type", controllers.GetContentByType)
		content.GET("/:id", controllers.GetContentDetail)
		content.POST("", middleware.RequireRoles(manager, trainer), controllers.CreateContent)
		content.PUT("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateContent)
		content.PATCH("/:id", middleware.RequireRoles(manager, trainer), controllers.UpdateContent)
		content.DELETE("/:id", middleware.RequireRoles(manager, trainer), controllers.DeleteContent)
		content.POST("/:id/toggle_active", middleware.RequireRoles(manager, trainer), controllers.ToggleContentActive)

		// Summarize is open to every authenticated user
		content.POST("/:id/summarize", middleware.SummarizerMiddleware(summarizer), controllers.SummarizeContent)
	}

	r.GET("/ws/status", ws.HandleStatusWebSocket)

	return r
}
