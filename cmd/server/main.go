package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/config"
	"invoice-backend/internal/database"
	"invoice-backend/internal/db"
	"invoice-backend/internal/handlers"
	"invoice-backend/internal/health"
	h "invoice-backend/internal/http"
	"invoice-backend/internal/middleware"
	"invoice-backend/internal/models"
	"invoice-backend/internal/repositories"
	"invoice-backend/internal/services"
	"invoice-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional - graceful fallback if unavailable
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (list caching disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations on startup so the binary is self-contained
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	itemRepo := repositories.NewItemRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool, cfg.Invoice.NumberPrefix)
	metaRepo := repositories.NewMetaRepository(pool)

	// Seed the seller record from config on first run only; afterwards the
	// stored record is edited through the API
	if cfg.Seller.Name != "" {
		seed := &models.Seller{
			Name:        cfg.Seller.Name,
			Address:     cfg.Seller.Address,
			Phone:       cfg.Seller.Phone,
			Email:       cfg.Seller.Email,
			PanNo:       cfg.Seller.PanNo,
			BankName:    cfg.Seller.BankName,
			BankAccount: cfg.Seller.BankAccount,
			BankIFSC:    cfg.Seller.BankIFSC,
			BankBranch:  cfg.Seller.BankBranch,
		}
		if err := metaRepo.SeedSeller(ctx, seed); err != nil {
			log.Printf("[Seller] Seed failed: %v", err)
		}
	}

	// Initialize services
	itemService := services.NewItemService(itemRepo)
	customerService := services.NewCustomerService(customerRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, metaRepo, customerRepo)
	invoiceService.DefaultCurrency = cfg.Invoice.Currency
	invoiceService.DefaultPaymentTerms = cfg.Invoice.PaymentTerms
	printerService := services.NewPrinterService(cfg.Printer.AgentURL,
		time.Duration(cfg.Printer.SettleDelayMS)*time.Millisecond)

	healthChecker := health.NewHealthChecker(pool)

	// Initialize handlers
	itemHandler := handlers.NewItemHandler(itemService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, printerService)
	exportHandler := handlers.NewExportHandler(invoiceService)
	sellerHandler := handlers.NewSellerHandler(metaRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(itemHandler, customerHandler, invoiceHandler,
		exportHandler, sellerHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
