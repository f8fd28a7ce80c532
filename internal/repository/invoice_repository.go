package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/delivery-billing/internal/model"
)

// InvoiceRepository is the append-only invoice history. Records are never
// updated or deduplicated: issuing twice for the same customer and period
// stores two independent invoices.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Append(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	saved := invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var header struct {
			ID        uuid.UUID
			CreatedAt time.Time
		}
		if err := tx.Raw(`
			INSERT INTO invoices (
				customer_id, period_start, period_end,
				subtotal, tax_rate, tax, total, issued_date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, created_at
		`,
			invoice.CustomerID,
			invoice.PeriodStart,
			invoice.PeriodEnd,
			invoice.Subtotal,
			invoice.TaxRate,
			invoice.Tax,
			invoice.Total,
			invoice.IssuedDate,
		).Scan(&header).Error; err != nil {
			return err
		}
		saved.ID = header.ID
		saved.CreatedAt = header.CreatedAt

		for i, detail := range invoice.Details {
			if err := tx.Exec(`
				INSERT INTO invoice_details (invoice_id, position, product_name, quantity, amount)
				VALUES (?, ?, ?, ?, ?)
			`, saved.ID, i, detail.ProductName, detail.Quantity, detail.Amount).Error; err != nil {
				return err
			}
		}

		for _, day := range invoice.Deliveries {
			for i, line := range day.Lines {
				if err := tx.Exec(`
					INSERT INTO invoice_delivery_lines (
						invoice_id, delivery_date, position, contract_id,
						product_name, quantity, unit_price, total_price,
						cancelled_day, suspended, temporary
					) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				`,
					saved.ID, day.Date, i, line.ContractID,
					line.ProductName, line.Quantity, line.UnitPrice, line.TotalPrice,
					line.CancelledDay, line.Suspended, line.Temporary,
				).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListByCustomer returns invoice headers, newest first. Details and per-day
// lines are loaded by GetByID.
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, period_start, period_end,
			subtotal, tax_rate, tax, total, issued_date, created_at
		FROM invoices
		WHERE customer_id = ?
		ORDER BY issued_date DESC, created_at DESC
	`, customerID).Scan(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, period_start, period_end,
			subtotal, tax_rate, tax, total, issued_date, created_at
		FROM invoices
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&invoice).Error; err != nil {
		return nil, err
	}
	if invoice.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT product_name, quantity, amount
		FROM invoice_details
		WHERE invoice_id = ?
		ORDER BY position ASC
	`, id).Scan(&invoice.Details).Error; err != nil {
		return nil, err
	}

	type lineRow struct {
		DeliveryDate time.Time
		ContractID   *uuid.UUID
		ProductName  string
		Quantity     int
		UnitPrice    int64
		TotalPrice   int64
		CancelledDay bool
		Suspended    bool
		Temporary    bool
	}
	var rows []lineRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT delivery_date, contract_id, product_name, quantity,
			unit_price, total_price, cancelled_day, suspended, temporary
		FROM invoice_delivery_lines
		WHERE invoice_id = ?
		ORDER BY delivery_date ASC, position ASC
	`, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		line := model.DeliveryLine{
			ContractID:   row.ContractID,
			ProductName:  row.ProductName,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			TotalPrice:   row.TotalPrice,
			CancelledDay: row.CancelledDay,
			Suspended:    row.Suspended,
			Temporary:    row.Temporary,
		}
		last := len(invoice.Deliveries) - 1
		if last < 0 || !invoice.Deliveries[last].Date.Equal(row.DeliveryDate) {
			invoice.Deliveries = append(invoice.Deliveries, model.InvoiceDay{Date: row.DeliveryDate})
			last++
		}
		invoice.Deliveries[last].Lines = append(invoice.Deliveries[last].Lines, line)
	}

	return &invoice, nil
}
