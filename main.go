package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/cafe-order-bot/config"
	"github.com/yeremiapane/cafe-order-bot/router"
	"github.com/yeremiapane/cafe-order-bot/services"
	"github.com/yeremiapane/cafe-order-bot/store"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

func main() {
	// Load .env sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Menu katalog: kode produk -> nama tampilan
	menu, err := utils.LoadMenu(cfg.MenuFile)
	if err != nil {
		utils.InfoLogger.Printf("Warning: menu file %s not loaded (%v), product codes will be used as names", cfg.MenuFile, err)
	}

	var orderStore store.OrderStore
	switch cfg.StoreDriver {
	case "sqlite", "mysql":
		db, err := config.InitDB(cfg)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
		}
		orderStore, err = store.NewGormStore(db)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to migrate order store: %v", err)
		}
	default:
		orderStore = store.NewFileStore(cfg.OrdersFile)
	}

	carts := services.NewCartService(orderStore)
	classifier := services.NewOpenAIClassifier(cfg.OpenAIKey)
	sender := services.NewWhatsAppService(cfg.WhatsAppToken, cfg.PhoneNumberID)

	r := router.SetupRouter(cfg, orderStore, menu, carts, classifier, sender)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
