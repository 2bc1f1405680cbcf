package routes

import (
	"Gin_redis_device_tracker/app"
	"Gin_redis_device_tracker/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	devCtl := controllers.NewDeviceController(s)

	// ------------------------------
	// Devices and scan log
	// ------------------------------
	api := r.Group("/api")
	{
		api.GET("/devices", devCtl.ListDevices)
		api.POST("/devices", devCtl.Register)
		api.DELETE("/devices/:id", devCtl.Unregister)

		api.POST("/scan", devCtl.Scan) // {barcode, holder?} → checkout | checkin | needsHolder
		api.GET("/logs", devCtl.ListLogs)
		api.GET("/stats", devCtl.GetStats)
	}
}
