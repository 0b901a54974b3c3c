package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/invoicebot/backend/config"
	httpDelivery "github.com/invoicebot/backend/internal/delivery/http"
	"github.com/invoicebot/backend/internal/domain"
	"github.com/invoicebot/backend/internal/infrastructure/catalog"
	"github.com/invoicebot/backend/internal/infrastructure/pdf"
	"github.com/invoicebot/backend/internal/infrastructure/telegram"
	"github.com/invoicebot/backend/internal/usecase"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting InvoiceBot Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog Type: %s", cfg.Catalog.Type)

	debug := cfg.Server.Environment == "development"

	// Open the catalog store; its lifecycle belongs here, not to the resolver
	store, closeStore, err := openCatalog(cfg, debug)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer closeStore()

	// Telegram Bot API client
	botClient := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.BaseURL)
	if debug {
		botClient.SetDebug(true)
		log.Printf("Telegram client debug mode enabled")
	}

	// Initialize usecase layer
	invoiceService := usecase.NewInvoiceService(
		store,
		pdf.NewRenderer(),
		botClient,
		usecase.InvoiceServiceConfig{
			TaxRatePercent:     decimal.NewFromFloat(cfg.Invoice.TaxRate),
			InvoiceOutputDir:   cfg.Invoice.OutputDir,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Invoices: tax=%.1f%%, output dir=%s", cfg.Invoice.TaxRate, cfg.Invoice.OutputDir)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(invoiceService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openCatalog builds the configured catalog backend and returns it together
// with its shutdown hook
func openCatalog(cfg *config.Config, debug bool) (domain.CatalogRepository, func(), error) {
	if cfg.Catalog.Type == "memory" {
		log.Printf("Using in-memory catalog (no records seeded)")
		return catalog.NewMemoryCatalog(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := catalog.Dial(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Connected to MongoDB database %q", cfg.Mongo.Database)

	closeStore := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("MongoDB disconnect: %v", err)
		}
	}

	db := client.Database(cfg.Mongo.Database)
	return catalog.NewMongoCatalog(db, debug), closeStore, nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
