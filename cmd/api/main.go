package main

import (
	"log"
	"os"

	_ "spa-backend/api/swagger" // swagger docs
	"spa-backend/internal/database"
	"spa-backend/internal/handler"
	"spa-backend/internal/middleware"
	"spa-backend/internal/repository"
	"spa-backend/internal/service"
	"spa-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Spa Booking VAT API
// @version         1.0
// @description     Back-office API for spa bookings, product sales, loyalty cards and tax-inclusive VAT reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "spa"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// WebSocket hub carries threshold notifications to back-office clients.
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	spaRepo := repository.NewSpaRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Services
	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo)
	catalogService := service.NewCatalogService(catalogRepo, spaRepo)
	bookingService := service.NewBookingService(bookingRepo, catalogRepo, auditRepo, txManager)
	saleService := service.NewSaleService(saleRepo, catalogRepo, auditRepo, txManager)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, catalogRepo, auditRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, bookingRepo, auditRepo, txManager)
	vatReportService := service.NewVATReportService(db)
	vatThresholdService := service.NewVATThresholdService(invoiceRepo, spaRepo, auditRepo, wsHub)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	saleHandler := handler.NewSaleHandler(saleService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	vatHandler := handler.NewVATHandler(vatReportService, vatThresholdService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	root := router.Group("")
	userHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	catalogHandler.RegisterRoutes(root)
	bookingHandler.RegisterRoutes(root)
	saleHandler.RegisterRoutes(root)
	loyaltyHandler.RegisterRoutes(root)
	invoiceHandler.RegisterRoutes(root)
	vatHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
