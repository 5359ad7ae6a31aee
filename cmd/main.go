package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"

	"gstbill/internal/caching"
	"gstbill/internal/config"
	"gstbill/internal/einvoice"
	"gstbill/internal/handlers"
	"gstbill/internal/jobs/background"
	"gstbill/internal/middleware"
	"gstbill/internal/repositories"
	"gstbill/internal/services"
	"gstbill/pkg/database"
)

const version = "1.0.0"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	pdfBucket := envOr("MINIO_PDF_BUCKET", "gstbill-invoices")

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	einvoiceConfigPath := envOr("EINVOICE_CONFIG", "configs/einvoice.toml")
	einvoiceCfg, err := config.LoadEInvoiceConfig(einvoiceConfigPath)
	if err != nil {
		log.Fatalf("Failed to load e-invoice config %s: %v", einvoiceConfigPath, err)
	}
	einvoiceClient := einvoice.NewClient(einvoiceCfg)

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	godownRepo := repositories.NewGodownRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	hsnRepo := repositories.NewHSNCodeRepository(pool)
	rawMaterialRepo := repositories.NewRawMaterialRepository(pool)
	finishedProductRepo := repositories.NewFinishedProductRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	roleRepo := repositories.NewRoleRepository(pool)
	permissionRepo := repositories.NewPermissionRepository(pool)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(pool)
	stockRepo := repositories.NewGodownStockRepository(pool)
	movementRepo := repositories.NewStockMovementRepository(pool)
	invoiceRepo := repositories.NewTaxInvoiceRepository(pool)
	sequenceRepo := repositories.NewInvoiceSequenceRepository(pool)
	einvoiceLogRepo := repositories.NewEInvoiceLogRepository(pool)
	settingsRepo := repositories.NewGSTSettingsRepository(pool)

	// Services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	authSvc := services.NewAuthService(userRepo, refreshTokenRepo, jwtSecret, 15*time.Minute, 30*24*time.Hour)
	rbacSvc := services.NewRBACService(permissionRepo, cacheSvc)
	stockSvc := services.NewStockService(stockRepo, movementRepo, cacheSvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, sequenceRepo, customerRepo, finishedProductRepo, hsnRepo, settingsRepo, cacheSvc)
	einvoiceSvc := services.NewEInvoiceService(invoiceRepo, einvoiceLogRepo, settingsRepo, customerRepo, finishedProductRepo, unitRepo, einvoiceClient, cacheSvc)
	pdfSvc := services.NewPDFService(invoiceRepo, customerRepo, finishedProductRepo, settingsRepo, minioSvc, pdfBucket)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, rbacSvc, userRepo)
	customerHandlers := handlers.NewCustomerHandlers(customerRepo)
	vendorHandlers := handlers.NewVendorHandlers(vendorRepo)
	godownHandlers := handlers.NewGodownHandlers(godownRepo)
	unitHandlers := handlers.NewUnitHandlers(unitRepo)
	hsnHandlers := handlers.NewHSNCodeHandlers(hsnRepo)
	rawMaterialHandlers := handlers.NewRawMaterialHandlers(rawMaterialRepo, unitRepo, hsnRepo)
	finishedProductHandlers := handlers.NewFinishedProductHandlers(finishedProductRepo, unitRepo, hsnRepo)
	userHandlers := handlers.NewUserHandlers(userRepo, roleRepo, authSvc, rbacSvc)
	stockHandlers := handlers.NewStockHandlers(stockSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, pdfSvc)
	einvoiceHandlers := handlers.NewEInvoiceHandlers(einvoiceSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	rbac := middleware.NewRBACMiddleware(rbacSvc)

	// Background jobs
	lowStockLevel := decimal.NewFromInt(10)
	if levelStr := os.Getenv("LOW_STOCK_THRESHOLD"); levelStr != "" {
		if level, err := decimal.NewFromString(levelStr); err == nil {
			lowStockLevel = level
		}
	}
	scheduler := background.NewJobScheduler(stockSvc, authSvc, einvoiceLogRepo, lowStockLevel)
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	protected.GET("/me", authHandlers.Me)

	protected.GET("/users", userHandlers.ListUsers, rbac.RequirePermission("users:list"))
	protected.POST("/users", userHandlers.CreateUser, rbac.RequirePermission("users:create"))
	protected.GET("/users/:id", userHandlers.GetUser, rbac.RequirePermission("users:read"))
	protected.PUT("/users/:id", userHandlers.UpdateUser, rbac.RequirePermission("users:update"))
	protected.DELETE("/users/:id", userHandlers.DeleteUser, rbac.RequirePermission("users:delete"))

	protected.GET("/customers", customerHandlers.ListCustomers, rbac.RequirePermission("customers:list"))
	protected.POST("/customers", customerHandlers.CreateCustomer, rbac.RequirePermission("customers:create"))
	protected.GET("/customers/:id", customerHandlers.GetCustomer, rbac.RequirePermission("customers:read"))
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer, rbac.RequirePermission("customers:update"))
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer, rbac.RequirePermission("customers:delete"))

	protected.GET("/vendors", vendorHandlers.ListVendors, rbac.RequirePermission("vendors:list"))
	protected.POST("/vendors", vendorHandlers.CreateVendor, rbac.RequirePermission("vendors:create"))
	protected.GET("/vendors/:id", vendorHandlers.GetVendor, rbac.RequirePermission("vendors:read"))
	protected.PUT("/vendors/:id", vendorHandlers.UpdateVendor, rbac.RequirePermission("vendors:update"))
	protected.DELETE("/vendors/:id", vendorHandlers.DeleteVendor, rbac.RequirePermission("vendors:delete"))

	protected.GET("/godowns", godownHandlers.ListGodowns, rbac.RequirePermission("godowns:list"))
	protected.POST("/godowns", godownHandlers.CreateGodown, rbac.RequirePermission("godowns:create"))
	protected.GET("/godowns/:id", godownHandlers.GetGodown, rbac.RequirePermission("godowns:read"))
	protected.PUT("/godowns/:id", godownHandlers.UpdateGodown, rbac.RequirePermission("godowns:update"))
	protected.DELETE("/godowns/:id", godownHandlers.DeleteGodown, rbac.RequirePermission("godowns:delete"))

	protected.GET("/units", unitHandlers.ListUnits, rbac.RequirePermission("units:list"))
	protected.POST("/units", unitHandlers.CreateUnit, rbac.RequirePermission("units:create"))
	protected.GET("/units/:id", unitHandlers.GetUnit, rbac.RequirePermission("units:read"))
	protected.PUT("/units/:id", unitHandlers.UpdateUnit, rbac.RequirePermission("units:update"))
	protected.DELETE("/units/:id", unitHandlers.DeleteUnit, rbac.RequirePermission("units:delete"))

	protected.GET("/hsn-codes", hsnHandlers.ListHSNCodes, rbac.RequirePermission("hsn_codes:list"))
	protected.POST("/hsn-codes", hsnHandlers.CreateHSNCode, rbac.RequirePermission("hsn_codes:create"))
	protected.GET("/hsn-codes/:id", hsnHandlers.GetHSNCode, rbac.RequirePermission("hsn_codes:read"))
	protected.PUT("/hsn-codes/:id", hsnHandlers.UpdateHSNCode, rbac.RequirePermission("hsn_codes:update"))
	protected.DELETE("/hsn-codes/:id", hsnHandlers.DeleteHSNCode, rbac.RequirePermission("hsn_codes:delete"))

	protected.GET("/raw-materials", rawMaterialHandlers.ListRawMaterials, rbac.RequirePermission("raw_materials:list"))
	protected.POST("/raw-materials", rawMaterialHandlers.CreateRawMaterial, rbac.RequirePermission("raw_materials:create"))
	protected.GET("/raw-materials/:id", rawMaterialHandlers.GetRawMaterial, rbac.RequirePermission("raw_materials:read"))
	protected.PUT("/raw-materials/:id", rawMaterialHandlers.UpdateRawMaterial, rbac.RequirePermission("raw_materials:update"))
	protected.DELETE("/raw-materials/:id", rawMaterialHandlers.DeleteRawMaterial, rbac.RequirePermission("raw_materials:delete"))

	protected.GET("/finished-products", finishedProductHandlers.ListFinishedProducts, rbac.RequirePermission("finished_products:list"))
	protected.POST("/finished-products", finishedProductHandlers.CreateFinishedProduct, rbac.RequirePermission("finished_products:create"))
	protected.GET("/finished-products/:id", finishedProductHandlers.GetFinishedProduct, rbac.RequirePermission("finished_products:read"))
	protected.PUT("/finished-products/:id", finishedProductHandlers.UpdateFinishedProduct, rbac.RequirePermission("finished_products:update"))
	protected.DELETE("/finished-products/:id", finishedProductHandlers.DeleteFinishedProduct, rbac.RequirePermission("finished_products:delete"))

	protected.GET("/stock", stockHandlers.ListStock, rbac.RequirePermission("stock:list"))
	protected.POST("/stock", stockHandlers.AddStock, rbac.RequirePermission("stock:update"))
	protected.POST("/stock/subtract", stockHandlers.SubtractStock, rbac.RequirePermission("stock:update"))
	protected.PUT("/stock/set", stockHandlers.SetStock, rbac.RequirePermission("stock:update"))
	protected.POST("/stock/transfer", stockHandlers.TransferStock, rbac.RequirePermission("stock:transfer"))
	protected.GET("/stock/movements", stockHandlers.ListMovements, rbac.RequirePermission("stock:list"))

	protected.GET("/invoices", invoiceHandlers.ListInvoices, rbac.RequirePermission("invoices:list"))
	protected.POST("/invoices", invoiceHandlers.CreateInvoice, rbac.RequirePermission("invoices:create"))
	protected.GET("/invoices/:id", invoiceHandlers.GetInvoice, rbac.RequirePermission("invoices:read"))
	protected.DELETE("/invoices/:id", invoiceHandlers.DeleteInvoice, rbac.RequirePermission("invoices:delete"))
	protected.GET("/invoices/:id/pdf", invoiceHandlers.InvoicePDF, rbac.RequirePermission("invoices:read"))

	protected.POST("/invoices/:id/einvoice", einvoiceHandlers.GenerateEInvoice, rbac.RequirePermission("einvoice:generate"))
	protected.DELETE("/invoices/:id/einvoice", einvoiceHandlers.CancelEInvoice, rbac.RequirePermission("einvoice:cancel"))
	protected.GET("/invoices/:id/einvoice", einvoiceHandlers.EInvoiceStatus, rbac.RequirePermission("einvoice:read"))

	protected.GET("/settings/gst", settingsHandlers.GetGSTSettings, rbac.RequirePermission("settings:read"))
	protected.PUT("/settings/gst", settingsHandlers.UpdateGSTSettings, rbac.RequirePermission("settings:update"))

	portStr := envOr("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("gstbill server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
