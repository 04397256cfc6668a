package main

import (
	"os"

	"github.com/DBN92/our-journey-together/config"
	"github.com/DBN92/our-journey-together/controllers"
	"github.com/DBN92/our-journey-together/routes"
	"github.com/DBN92/our-journey-together/services"
	"github.com/DBN92/our-journey-together/utils"
)

func main() {
	log, err := utils.NewLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	config.InitDB()
	config.InitRedis()
	utils.InitS3()
	utils.InitMailer()

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Warn("push notifications disabled", "error", err)
	}

	moderation, err := services.NewModerationService()
	if err != nil {
		log.Warn("image moderation disabled", "error", err)
	}

	logs := services.NewLogService(config.DB)
	stats := services.NewStatsService(config.DB)
	settings := services.NewSettingsService(config.DB, config.Redis, log)
	coach := services.NewCoachService(log)

	services.InitMessageDeps(config.DB, hub, push)

	r := routes.SetupRouter(routes.Controllers{
		Couple:   controllers.NewCoupleController(logs),
		Logs:     controllers.NewLogController(logs),
		Stats:    controllers.NewStatsController(stats, settings),
		Goals:    controllers.NewGoalController(settings),
		Uploads:  controllers.NewUploadController(moderation, settings, log),
		Devices:  controllers.NewDeviceController(push),
		Coach:    controllers.NewCoachController(coach),
		Realtime: controllers.NewRealtimeController(hub),
	}, os.Getenv("STATIC_DIR"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("server starting", "port", port)
	r.Run(":" + port)
}
