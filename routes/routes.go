package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/DBN92/our-journey-together/controllers"
	"github.com/DBN92/our-journey-together/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers groups every handler the router needs.
type Controllers struct {
	Couple   *controllers.CoupleController
	Logs     *controllers.LogController
	Stats    *controllers.StatsController
	Goals    *controllers.GoalController
	Uploads  *controllers.UploadController
	Devices  *controllers.DeviceController
	Coach    *controllers.CoachController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers, staticDir string) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/couple", ctrl.Couple.CreateCouple)
		api.POST("/couple/join", ctrl.Couple.JoinCouple)
		api.POST("/devices", ctrl.Devices.RegisterDevice)
		api.POST("/uploads/avatar", ctrl.Uploads.UploadAvatar)

		// Everything below requires an onboarded couple.
		couple := api.Group("")
		couple.Use(middlewares.CoupleMiddleware())
		{
			couple.GET("/couple", ctrl.Couple.GetProfile)
			couple.POST("/couple/invite", ctrl.Couple.InvitePartner)
			couple.DELETE("/couple/data", ctrl.Couple.ResetData)

			couple.POST("/meals", ctrl.Logs.LogMeal)
			couple.GET("/meals", ctrl.Logs.ListMeals)
			couple.POST("/exercises", ctrl.Logs.LogExercise)
			couple.GET("/exercises", ctrl.Logs.ListExercises)
			couple.POST("/moods", ctrl.Logs.LogCheckin)
			couple.GET("/moods", ctrl.Logs.ListCheckins)

			couple.GET("/stats/overview", ctrl.Stats.GetOverview)

			couple.GET("/goals/targets", ctrl.Goals.GetTargets)
			couple.PUT("/goals/targets", ctrl.Goals.UpdateTargets)

			couple.POST("/messages", controllers.SendMessage)
			couple.GET("/messages", controllers.ListMessages)

			couple.POST("/uploads/logo", ctrl.Uploads.UploadLogo)
			couple.POST("/ai/generate", ctrl.Coach.Generate)
		}
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware(), middlewares.CoupleMiddleware())
	{
		ws.GET("", ctrl.Realtime.CoupleWS)
	}

	if staticDir != "" {
		registerSPA(r, staticDir)
	}

	return r
}

// registerSPA serves the built frontend and falls back to index.html for
// client-side routes: any unmatched GET whose path carries no file
// extension gets the app shell instead of a 404.
func registerSPA(r *gin.Engine, dir string) {
	r.Static("/assets", filepath.Join(dir, "assets"))
	r.StaticFile("/", filepath.Join(dir, "index.html"))
	r.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if strings.Contains(filepath.Base(c.Request.URL.Path), ".") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
