package http

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invoicebot/backend/internal/domain"
	"github.com/invoicebot/backend/internal/usecase"
)

// updateTimeout bounds the background processing of one webhook update
const updateTimeout = 30 * time.Second

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.InvoiceService
}

// NewHandler creates a new HTTP handler
func NewHandler(service *usecase.InvoiceService) *Handler {
	return &Handler{service: service}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "invoicebot-backend",
		"version": "1.0.0",
	})
}

// Webhook ingests one Telegram update. The update is handed off to a
// background goroutine so Telegram gets its 200 immediately; replies flow
// back through the bot client, not this response.
func (h *Handler) Webhook(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Bot service not configured"})
		return
	}

	var update domain.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()

		if err := h.service.HandleUpdate(ctx, &update); err != nil {
			log.Printf("[HTTP] Update %d failed: %v", update.UpdateID, err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Message received"})
}

// GenerateInvoice is the direct REST variant of the bot command: it resolves
// a single customer/product pair, renders the invoice, and serves the PDF.
func (h *Handler) GenerateInvoice(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Bot service not configured"})
		return
	}

	customerName := c.Query("customer_name")
	productName := c.Query("product_name")
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))

	if customerName == "" || productName == "" || err != nil || quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "customer_name, product_name and a positive quantity are required",
		})
		return
	}

	request := &domain.ParsedRequest{
		CustomerName: customerName,
		Items:        []domain.RequestItem{{ProductName: productName, Quantity: quantity}},
	}

	order, err := h.service.BuildOrder(c.Request.Context(), request)
	if err != nil {
		log.Printf("[HTTP] Order build failed for customer %q: %v", customerName, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog lookup failed"})
		return
	}

	switch order.Status {
	case domain.StatusCustomerNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	case domain.StatusProductsNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "missing": order.Missing})
		return
	}

	path, err := h.service.RenderInvoice(order)
	if err != nil {
		log.Printf("[HTTP] Rendering failed for customer %q: %v", customerName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invoice rendering failed"})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
