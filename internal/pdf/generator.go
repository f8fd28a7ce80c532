package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/delivery-billing/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(doc model.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s issued %s", doc.Invoice.ID, formatDate(doc.Invoice.IssuedDate)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Billing period %s - %s", formatDate(doc.Invoice.PeriodStart), formatDate(doc.Invoice.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addCustomerBlock(pdf, g.fontName, doc.Customer)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Delivered products", "", 1, "L", false, 0, "")

	headers := []string{"Product", "Quantity", "Amount"}
	colWidths := []float64{100, 35, 45}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, detail := range doc.Invoice.Details {
		row := []string{
			detail.ProductName,
			fmt.Sprintf("%d", detail.Quantity),
			formatAmount(detail.Amount, doc.Currency),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subtotal: %s", formatAmount(doc.Invoice.Subtotal, doc.Currency)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tax (%.0f%%): %s", doc.Invoice.TaxRate*100, formatAmount(doc.Invoice.Tax, doc.Currency)), "", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %s", formatAmount(doc.Invoice.Total, doc.Currency)), "", 1, "R", false, 0, "")

	if len(doc.Invoice.Deliveries) > 0 {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Deliveries by date", "", 1, "L", false, 0, "")
		dayHeaders := []string{"Date", "Product", "Qty", "Price", "Notes"}
		dayWidths := []float64{30, 80, 15, 30, 25}
		drawTableRow(pdf, g.fontName, dayHeaders, dayWidths, true)
		for _, day := range doc.Invoice.Deliveries {
			for _, line := range day.Lines {
				row := []string{
					formatDate(day.Date),
					line.ProductName,
					fmt.Sprintf("%d", line.Quantity),
					formatAmount(line.TotalPrice, doc.Currency),
					lineNotes(line),
				}
				drawTableRow(pdf, g.fontName, row, dayWidths, false)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addCustomerBlock(pdf *gofpdf.Fpdf, fontName string, customer model.Customer) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		customer.Name,
		fmt.Sprintf("Address: %s", safeValue(customer.Address)),
		fmt.Sprintf("Phone: %s", safeValue(customer.Phone)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func lineNotes(line model.DeliveryLine) string {
	var notes []string
	if line.CancelledDay {
		notes = append(notes, "cancelled")
	}
	if line.Suspended {
		notes = append(notes, "suspended")
	}
	if line.Temporary {
		notes = append(notes, "one-off")
	}
	return strings.Join(notes, ", ")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%d %s", amount, currency)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
