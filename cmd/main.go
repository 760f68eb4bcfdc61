package main

import (
	"log"
	"time"

	"github.com/n8hotnews-a11y/Smart-Frigde/config"
	"github.com/n8hotnews-a11y/Smart-Frigde/controllers"
	"github.com/n8hotnews-a11y/Smart-Frigde/routes"
	"github.com/n8hotnews-a11y/Smart-Frigde/services"
	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

func main() {
	config.Init()
	cfg := config.App

	utils.InitS3()
	utils.InitSES()

	inv := services.NewInventoryService(cfg.ExpirySoonDays)
	if cfg.DevSeed {
		inv.Seed(time.Now())
	}
	family := services.NewFamilyService(services.DefaultRoster())

	gateway := services.NewIdentityGateway(cfg.FirebaseAPIKey)
	ai := services.NewGeminiService(cfg.GeminiAPIKey, services.WithGeminiModel(cfg.GeminiModel))

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService()
	if err != nil {
		log.Printf("push disabled: %v", err)
		push = nil
	}
	recognize, err := services.NewRecognizeService()
	if err != nil {
		log.Printf("image recognition disabled: %v", err)
		recognize = nil
	}

	alerts := services.NewAlertService(inv, hub, push, cfg.ExpiryCriticalDays)
	cancelAuthWatch := alerts.BindAuth(gateway)
	defer cancelAuthWatch()

	reports := services.NewReportService(ai, services.NewSimulatedMetricsProvider(time.Now().UnixNano()))
	chat := services.NewChatSession(ai)

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(gateway),
		Inventory: controllers.NewInventoryController(inv, recognize, cfg.ExpiryCriticalDays, cfg.ExpiryWarningDays),
		Family:    controllers.NewFamilyController(family),
		Meals:     controllers.NewMealController(ai, inv),
		Reports:   controllers.NewReportController(reports, family),
		Chat:      controllers.NewChatController(chat),
		Alerts:    controllers.NewAlertController(alerts),
		Realtime:  controllers.NewRealtimeController(hub),
		Devices:   controllers.NewDeviceController(push),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
