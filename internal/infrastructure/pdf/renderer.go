package pdf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/invoicebot/backend/internal/domain"
)

// Table column widths in mm
const (
	colProduct  = 60.0
	colQuantity = 40.0
	colPrice    = 40.0
	colSubtotal = 40.0
	rowHeight   = 10.0
)

// Renderer produces invoice PDF documents from assembled orders
type Renderer struct{}

// NewRenderer creates a new invoice PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the invoice for a valid order to path, creating parent
// directories as needed. Orders that are not renderable are rejected.
func (r *Renderer) Render(order *domain.AssembledOrder, path string) error {
	if !order.Renderable() {
		return fmt.Errorf("%w: order is not renderable", domain.ErrRenderFailed)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create output dir: %v", domain.ErrRenderFailed, err)
		}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	// Title
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, rowHeight, "Invoice", "", 1, "C", false, 0, "")

	// Customer block
	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Customer: %s", order.Customer.Name), "", 1, "L", false, 0, "")
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Phone: %s", order.Customer.Phone), "", 1, "L", false, 0, "")
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Address: %s", order.Customer.Address), "", 1, "L", false, 0, "")
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")

	// Table header
	doc.Ln(rowHeight)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(colProduct, rowHeight, "Product", "1", 0, "L", false, 0, "")
	doc.CellFormat(colQuantity, rowHeight, "Quantity", "1", 0, "L", false, 0, "")
	doc.CellFormat(colPrice, rowHeight, "Unit Price", "1", 0, "L", false, 0, "")
	doc.CellFormat(colSubtotal, rowHeight, "Subtotal", "1", 1, "L", false, 0, "")

	// Line items
	doc.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		doc.CellFormat(colProduct, rowHeight, item.ProductName, "1", 0, "L", false, 0, "")
		doc.CellFormat(colQuantity, rowHeight, strconv.Itoa(item.Quantity), "1", 0, "L", false, 0, "")
		doc.CellFormat(colPrice, rowHeight, item.UnitPrice.StringFixed(2), "1", 0, "L", false, 0, "")
		doc.CellFormat(colSubtotal, rowHeight, item.Subtotal.StringFixed(2), "1", 1, "L", false, 0, "")
	}

	// Totals
	doc.Ln(rowHeight)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Tax: %s", order.Tax.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Total: %s", order.Total.StringFixed(2)), "", 1, "L", false, 0, "")

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	log.Printf("[PDF] Invoice written: %s (%d items)", path, len(order.Items))
	return nil
}

// InvoicePath builds the output path for a customer's invoice,
// <outputDir>/<Customer Name>_invoice.pdf
func InvoicePath(outputDir, customerName string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_invoice.pdf", customerName))
}
