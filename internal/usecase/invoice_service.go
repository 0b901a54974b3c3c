package usecase

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/invoicebot/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// User-facing reply texts. Success and failure travel the same channel.
const (
	welcomeMessage = "Welcome! Use:\n/generate invoice for <customer> : <quantity> <product>, <quantity> <product>"
	usageHint      = "Invalid format. Use:\n/generate invoice for <customer> : <quantity> <product>, <quantity> <product>"
	failureNotice  = "Something went wrong while generating your invoice. Please try again."
)

// InvoiceServiceConfig holds configuration for the invoice service
type InvoiceServiceConfig struct {
	TaxRatePercent     decimal.Decimal
	InvoiceOutputDir   string
	EnableDebugLogging bool
}

// InvoiceService handles inbound bot commands end to end: parse, resolve
// against the catalog, assemble, render, reply.
type InvoiceService struct {
	catalog            domain.CatalogRepository
	renderer           domain.InvoiceRenderer
	messenger          domain.Messenger
	parser             *CommandParser
	taxRatePercent     decimal.Decimal
	invoiceOutputDir   string
	enableDebugLogging bool
}

// NewInvoiceService creates a new invoice service with dependencies
func NewInvoiceService(
	catalog domain.CatalogRepository,
	renderer domain.InvoiceRenderer,
	messenger domain.Messenger,
	config InvoiceServiceConfig,
) *InvoiceService {
	taxRate := config.TaxRatePercent
	if taxRate.IsZero() {
		taxRate = decimal.NewFromInt(18) // Default 18%
	}

	outputDir := config.InvoiceOutputDir
	if outputDir == "" {
		outputDir = "invoices"
	}

	return &InvoiceService{
		catalog:            catalog,
		renderer:           renderer,
		messenger:          messenger,
		parser:             NewCommandParser(config.EnableDebugLogging),
		taxRatePercent:     taxRate,
		invoiceOutputDir:   outputDir,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// HandleUpdate processes one inbound webhook update as an independent unit of
// work. Non-command messages are ignored; /start and /help get the usage
// greeting; /generate runs the invoice pipeline. The returned error reports
// infrastructure failures after the user has already been notified through
// the reply channel.
func (s *InvoiceService) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil || update.Message == nil {
		return nil
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		return s.messenger.SendMessage(ctx, chatID, welcomeMessage)
	case strings.HasPrefix(text, "/generate"):
		return s.generate(ctx, chatID, text)
	default:
		return nil
	}
}

// generate runs the full pipeline for one /generate command
func (s *InvoiceService) generate(ctx context.Context, chatID int64, text string) error {
	request, err := s.parser.Parse(text)
	if err != nil {
		return s.messenger.SendMessage(ctx, chatID, usageHint)
	}

	order, err := s.BuildOrder(ctx, request)
	if err != nil {
		log.Printf("[BOT] Order build failed for customer %q: %v", request.CustomerName, err)
		s.notifyFailure(ctx, chatID)
		return err
	}

	switch order.Status {
	case domain.StatusCustomerNotFound:
		return s.messenger.SendMessage(ctx, chatID,
			fmt.Sprintf("Customer '%s' not found in the catalog", request.CustomerName))
	case domain.StatusProductsNotFound:
		return s.messenger.SendMessage(ctx, chatID,
			fmt.Sprintf("Products not found in the catalog: %s", strings.Join(order.Missing, ", ")))
	}

	path, err := s.RenderInvoice(order)
	if err != nil {
		log.Printf("[BOT] Rendering failed for customer %q: %v", order.Customer.Name, err)
		s.notifyFailure(ctx, chatID)
		return err
	}

	if err := s.messenger.SendDocument(ctx, chatID, path); err != nil {
		log.Printf("[BOT] Document delivery failed for customer %q: %v", order.Customer.Name, err)
		return err
	}

	if s.enableDebugLogging {
		log.Printf("[BOT] Invoice delivered to chat %d: %s", chatID, path)
	}
	return nil
}

// BuildOrder resolves the customer and every item of a parsed request and
// returns the assembled order. Lookups run sequentially in item order, so
// missing products report in a stable order matching the input.
func (s *InvoiceService) BuildOrder(ctx context.Context, request *domain.ParsedRequest) (*domain.AssembledOrder, error) {
	customer, err := s.catalog.FindCustomer(ctx, request.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("looking up customer %q: %w", request.CustomerName, err)
	}

	return AssembleOrder(ctx, request, customer, s.catalog.FindProduct, s.taxRatePercent)
}

// RenderInvoice renders a valid order to its invoice file and returns the path
func (s *InvoiceService) RenderInvoice(order *domain.AssembledOrder) (string, error) {
	path := filepath.Join(s.invoiceOutputDir, fmt.Sprintf("%s_invoice.pdf", order.Customer.Name))
	if err := s.renderer.Render(order, path); err != nil {
		return "", err
	}
	return path, nil
}

// notifyFailure sends the generic failure notice, logging if even that fails
func (s *InvoiceService) notifyFailure(ctx context.Context, chatID int64) {
	if err := s.messenger.SendMessage(ctx, chatID, failureNotice); err != nil {
		log.Printf("[BOT] Failed to deliver failure notice to chat %d: %v", chatID, err)
	}
}
