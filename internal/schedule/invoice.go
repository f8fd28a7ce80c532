package schedule

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/delivery-billing/internal/model"
)

// BuildInvoiceDraft aggregates resolved deliveries over the closed period
// into an invoice draft: per-date line groups, product detail rows in
// first-seen order, subtotal, floored tax and total. Degenerate inputs
// (no contracts, inverted or zero-length periods, contracts entirely
// outside the period) yield an empty zero draft, never an error.
func BuildInvoiceDraft(
	customerID uuid.UUID,
	periodStart, periodEnd time.Time,
	contracts []model.Contract,
	temporaries []model.TemporaryDelivery,
	taxRate float64,
) model.Invoice {
	start := dateOnly(periodStart)
	end := dateOnly(periodEnd)

	invoice := model.Invoice{
		CustomerID:  customerID,
		PeriodStart: start,
		PeriodEnd:   end,
		TaxRate:     taxRate,
	}

	detailIndex := make(map[string]int)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		lines := Compose(day, contracts, temporaries)
		if len(lines) == 0 {
			continue
		}
		invoice.Deliveries = append(invoice.Deliveries, model.InvoiceDay{Date: day, Lines: lines})
		for _, line := range lines {
			pos, ok := detailIndex[line.ProductName]
			if !ok {
				invoice.Details = append(invoice.Details, model.InvoiceDetail{ProductName: line.ProductName})
				pos = len(invoice.Details) - 1
				detailIndex[line.ProductName] = pos
			}
			invoice.Details[pos].Quantity += line.Quantity
			invoice.Details[pos].Amount += line.TotalPrice
		}
	}

	for _, detail := range invoice.Details {
		invoice.Subtotal += detail.Amount
	}
	invoice.Tax = int64(math.Floor(float64(invoice.Subtotal) * taxRate))
	invoice.Total = invoice.Subtotal + invoice.Tax
	return invoice
}
