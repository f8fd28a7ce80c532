package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/delivery-billing/internal/model"
	"github.com/nurpe/delivery-billing/internal/schedule"
)

type InvoiceInput struct {
	CustomerID  uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	IssueDate   time.Time // supplied by the caller, never read from a clock
	Principal   model.Principal
}

// PreviewInvoice computes a draft without touching the history.
func (s *BillingService) PreviewInvoice(ctx context.Context, input InvoiceInput) (*model.Invoice, error) {
	if input.Principal.IsCourier() {
		return nil, ErrPermissionDenied
	}
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	draft, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// IssueInvoice computes the invoice and appends it to the history. There is
// no idempotency key: issuing twice for the same customer and period yields
// two records.
func (s *BillingService) IssueInvoice(ctx context.Context, input InvoiceInput) (*model.Invoice, error) {
	if input.Principal.IsCourier() {
		return nil, ErrPermissionDenied
	}
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}
	if input.IssueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue_date is required", ErrInvalidInput)
	}

	draft, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	draft.IssuedDate = dateOnly(input.IssueDate)

	return s.invoices.Append(ctx, *draft)
}

func (s *BillingService) buildDraft(ctx context.Context, input InvoiceInput) (*model.Invoice, error) {
	if _, err := s.schedules.GetCustomer(ctx, input.CustomerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	contracts, err := s.schedules.ListContracts(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	temporaries, err := s.schedules.ListTemporaryDeliveries(
		ctx, input.CustomerID, dateOnly(input.PeriodStart), dateOnly(input.PeriodEnd))
	if err != nil {
		return nil, err
	}

	draft := schedule.BuildInvoiceDraft(
		input.CustomerID,
		input.PeriodStart, input.PeriodEnd,
		contracts, temporaries,
		s.taxRate,
	)
	return &draft, nil
}

func (s *BillingService) ListInvoices(ctx context.Context, customerID uuid.UUID, principal model.Principal) ([]model.Invoice, error) {
	if principal.IsCourier() {
		return nil, ErrPermissionDenied
	}
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	return s.invoices.ListByCustomer(ctx, customerID)
}

// InvoicePDF renders a stored invoice as a document.
func (s *BillingService) InvoicePDF(ctx context.Context, invoiceID uuid.UUID, principal model.Principal) (*ExportResult, error) {
	if principal.IsCourier() {
		return nil, ErrPermissionDenied
	}
	if invoiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: invoice_id is required", ErrInvalidInput)
	}

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customer, err := s.schedules.GetCustomer(ctx, invoice.CustomerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Customer rows can disappear after issuance; the document
			// falls back to a placeholder block.
			customer = &model.Customer{ID: invoice.CustomerID, Name: "(unknown customer)"}
		} else {
			return nil, err
		}
	}

	content, err := s.pdf.Generate(model.InvoiceDocument{
		Invoice:  *invoice,
		Customer: *customer,
		Currency: s.currency,
	})
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("invoice-%s-%s.pdf",
		invoice.PeriodStart.Format("20060102"), invoice.PeriodEnd.Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

type CourseInvoiceInput struct {
	CourseID    uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	IssueDate   time.Time
	Principal   model.Principal
}

// IssueCourseInvoices builds and persists one invoice per customer on the
// course. Customers with no resolved deliveries stay in the batch as
// placeholder sections with an unpersisted zero draft.
func (s *BillingService) IssueCourseInvoices(ctx context.Context, input CourseInvoiceInput) (*model.CourseInvoiceBatch, error) {
	if !(input.Principal.IsAdmin() || input.Principal.IsStaff()) {
		return nil, ErrPermissionDenied
	}
	if input.CourseID == uuid.Nil {
		return nil, fmt.Errorf("%w: course_id is required", ErrInvalidInput)
	}
	if err := validatePeriod(input.PeriodStart, input.PeriodEnd); err != nil {
		return nil, err
	}
	if input.IssueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue_date is required", ErrInvalidInput)
	}

	course, err := s.schedules.GetCourse(ctx, input.CourseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customers, err := s.schedules.ListCourseCustomers(ctx, input.CourseID)
	if err != nil {
		return nil, err
	}

	batch := &model.CourseInvoiceBatch{
		CourseID:    course.ID,
		CourseName:  course.Name,
		PeriodStart: dateOnly(input.PeriodStart),
		PeriodEnd:   dateOnly(input.PeriodEnd),
		Sections:    make([]model.CourseInvoiceSection, 0, len(customers)),
	}

	for _, customer := range customers {
		draft, err := s.buildDraft(ctx, InvoiceInput{
			CustomerID:  customer.ID,
			PeriodStart: input.PeriodStart,
			PeriodEnd:   input.PeriodEnd,
			Principal:   input.Principal,
		})
		if err != nil {
			return nil, err
		}

		section := model.CourseInvoiceSection{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
		}
		if len(draft.Deliveries) == 0 {
			section.Empty = true
			section.Invoice = *draft
		} else {
			draft.IssuedDate = dateOnly(input.IssueDate)
			saved, err := s.invoices.Append(ctx, *draft)
			if err != nil {
				return nil, err
			}
			section.Invoice = *saved
		}
		batch.Sections = append(batch.Sections, section)
	}

	return batch, nil
}

func validateInvoiceInput(input InvoiceInput) error {
	if input.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	return validatePeriod(input.PeriodStart, input.PeriodEnd)
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	if dateOnly(start).After(dateOnly(end)) {
		return fmt.Errorf("%w: period_start must be before or equal to period_end", ErrInvalidInput)
	}
	return nil
}
