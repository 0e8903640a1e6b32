package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"beerapp/server/internal/api"
	"beerapp/server/internal/config"
	"beerapp/server/internal/database"
	"beerapp/server/internal/services"
	"beerapp/server/internal/utils"
)

func main() {
	// .env необязателен, в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Println("📋 .env файл не найден, используем переменные окружения")
	}

	cfg := config.Load()
	log.Printf("🚀 Запуск сервера (env: %s, порт: %s)", cfg.Environment, cfg.ServerPort)

	// MongoDB: каталог, заказы, организации
	mongoClient, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		// Без MongoDB сервер бесполезен
		log.Fatalf("❌ Ошибка подключения к MongoDB: %v", err)
	}
	defer database.CloseMongo(mongoClient)
	db := mongoClient.Database(cfg.MongoDBName)

	// Redis: регистрация пользователей и настройки приложения
	// Без Redis продолжаем в деградированном режиме (каталог и статусы работают)
	var sessionStore services.HashStore
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️ Redis недоступен, авторизация и настройки не будут работать: %v", err)
	} else {
		defer database.CloseRedis(redisClient)
		sessionStore = utils.NewRedisClient(redisClient)
	}

	// Внешние интеграции
	erpClient := services.NewERPClient(cfg.API1CBaseURL, cfg.API1CUsername, cfg.API1CPassword, cfg.API1CTimeout)
	supabaseClient := services.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)

	// Сервисы
	userService := services.NewUserService(sessionStore)
	catalogService := services.NewCatalogService(db, userService)
	orderService := services.NewOrderService(db, erpClient, catalogService)
	taraService := services.NewTaraService(db, supabaseClient, catalogService)
	orderService.SetTaraService(taraService)
	statusService := services.NewStatusService(orderService, erpClient)
	suggestService := services.NewSuggestService(orderService, userService)

	// Контроллеры
	authController := api.NewAuthController(userService, cfg.TelegramRegisterURL)
	catalogController := api.NewCatalogController(catalogService)
	orderController := api.NewOrderController(orderService, userService, erpClient, suggestService)
	statusController := api.NewStatusController(statusService)
	taraController := api.NewTaraController(taraService)
	adminController := api.NewAdminController(userService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger())
	r.Use(api.CORS())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":   "ok",
				"service":  "beer-miniapp-backend",
				"redis":    sessionStore != nil,
				"erp":      erpClient.Available(),
				"supabase": supabaseClient.Available(),
			})
		})

		v1.GET("/auth/check", authController.Check)
		v1.GET("/products", catalogController.GetProducts)

		v1.POST("/orders", orderController.CreateOrder)
		v1.GET("/orders/my", orderController.GetMyOrders)
		v1.GET("/orders/history", orderController.GetHistory)
		v1.GET("/orders/suggestions", orderController.GetSuggestions)
		v1.POST("/orders/statuses/batch", statusController.BatchStatuses)
		v1.GET("/orders/:id", orderController.GetOrder)
		v1.POST("/orders/:id/cancel", orderController.CancelOrder)
		v1.GET("/orders/:id/combined-status", statusController.CombinedStatus)

		v1.POST("/checkout/calculate", orderController.CalculateCheckout)

		v1.POST("/tara/movements", taraController.RecordMovement)
		v1.GET("/tara/balance", taraController.GetBalance)

		v1.GET("/admin/coefficient", adminController.GetCoefficient)
		v1.PUT("/admin/coefficient", adminController.SetCoefficient)
	}

	log.Printf("✅ Сервер слушает порт %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ Ошибка запуска сервера: %v", err)
	}
}
