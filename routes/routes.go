package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/controllers"
	"github.com/n8hotnews-a11y/Smart-Frigde/middlewares"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Inventory *controllers.InventoryController
	Family    *controllers.FamilyController
	Meals     *controllers.MealController
	Reports   *controllers.ReportController
	Chat      *controllers.ChatController
	Alerts    *controllers.AlertController
	Realtime  *controllers.RealtimeController
	Devices   *controllers.DeviceController
}

func SetupRouter(c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// Everything else needs a session token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/auth/logout", c.Auth.Logout)

		api.GET("/inventory", c.Inventory.List)
		api.POST("/inventory", c.Inventory.Create)
		api.PUT("/inventory/:id", c.Inventory.Update)
		api.DELETE("/inventory/:id", c.Inventory.Delete)
		api.GET("/inventory/expiring", c.Inventory.Expiring)
		api.POST("/inventory/image", c.Inventory.UploadImage)
		api.POST("/inventory/recognize", c.Inventory.Recognize)

		api.GET("/family", c.Family.List)

		api.POST("/meals/suggest", c.Meals.Suggest)

		api.GET("/reports", c.Reports.GenerateAll)

		api.GET("/chat/history", c.Chat.History)
		api.POST("/chat", c.Chat.Send)

		api.GET("/alerts", c.Alerts.List)
		api.POST("/alerts/digest", c.Alerts.SendDigest)
		api.GET("/ws/alerts", c.Realtime.AlertsWS)

		api.POST("/devices", c.Devices.Register)
		api.POST("/devices/toggle", c.Devices.Toggle)
	}

	return r
}
