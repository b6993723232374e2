package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-order-bot/config"
	"github.com/yeremiapane/cafe-order-bot/controllers"
	"github.com/yeremiapane/cafe-order-bot/middlewares"
	"github.com/yeremiapane/cafe-order-bot/services"
	"github.com/yeremiapane/cafe-order-bot/store"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

func SetupRouter(cfg *config.Config, st store.OrderStore, menu utils.Menu,
	carts *services.CartService, classifier services.IntentClassifier,
	sender services.MessageSender) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	webhookCtrl := controllers.NewWebhookController(carts, classifier, sender, menu, cfg.VerifyToken)
	adminCtrl := controllers.NewAdminController(st)
	menuCtrl := controllers.NewMenuController(menu)
	userCtrl := controllers.NewUserController(cfg)

	// Webhook dari Meta
	r.GET("/webhook", webhookCtrl.VerifyWebhook)
	r.POST("/webhook", webhookCtrl.HandleWebhook)

	// Dashboard API
	r.POST("/admin/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
	admin := r.Group("/admin", middlewares.AuthMiddleware())
	{
		admin.GET("/orders", adminCtrl.GetAllOrders)
		admin.GET("/summary", adminCtrl.GetSalesSummary)
		admin.GET("/menu", menuCtrl.GetMenu)
	}

	return r
}
