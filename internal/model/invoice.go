package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceDetail is one product group on an invoice.
type InvoiceDetail struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// InvoiceDay holds the resolved delivery lines of one date inside the
// invoiced period. Days without lines are not stored.
type InvoiceDay struct {
	Date  time.Time      `json:"date"`
	Lines []DeliveryLine `json:"lines"`
}

// Invoice is a billing aggregate over a closed date period. A draft has a
// zero ID; issuance assigns one and appends the record to the history.
// Records are immutable: issuing twice for an overlapping period creates
// two independent invoices.
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Subtotal    int64           `json:"subtotal"`
	TaxRate     float64         `json:"tax_rate"`
	Tax         int64           `json:"tax"`
	Total       int64           `json:"total"`
	IssuedDate  time.Time       `json:"issued_date"`
	Details     []InvoiceDetail `json:"details"`
	Deliveries  []InvoiceDay    `json:"deliveries"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InvoiceDocument bundles everything the PDF renderer needs.
type InvoiceDocument struct {
	Invoice  Invoice
	Customer Customer
	Currency string
}

// CourseInvoiceSection is one customer's slice of a course-level batch run.
// Customers with no resolved deliveries keep a placeholder section with a
// zero draft instead of being dropped.
type CourseInvoiceSection struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Invoice      Invoice   `json:"invoice"`
	Empty        bool      `json:"empty"`
}

type CourseInvoiceBatch struct {
	CourseID    uuid.UUID              `json:"course_id"`
	CourseName  string                 `json:"course_name"`
	PeriodStart time.Time              `json:"period_start"`
	PeriodEnd   time.Time              `json:"period_end"`
	Sections    []CourseInvoiceSection `json:"sections"`
}
