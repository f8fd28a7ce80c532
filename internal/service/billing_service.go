package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/delivery-billing/internal/config"
	"github.com/nurpe/delivery-billing/internal/model"
	"github.com/nurpe/delivery-billing/internal/schedule"
)

// ScheduleStore loads schedule engine inputs.
type ScheduleStore interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListCourseCustomers(ctx context.Context, courseID uuid.UUID) ([]model.Customer, error)
	ListContracts(ctx context.Context, customerID uuid.UUID) ([]model.Contract, error)
	ListTemporaryDeliveries(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]model.TemporaryDelivery, error)
}

// InvoiceStore is the append-only invoice history.
type InvoiceStore interface {
	Append(ctx context.Context, invoice model.Invoice) (*model.Invoice, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
}

type ExcelGenerator interface {
	Generate(customer model.Customer, grid model.MonthGrid, summaries []model.ContractMonthlySummary) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.InvoiceDocument) ([]byte, error)
}

// BillingService wires the pure schedule engine to persistence and the
// document generators.
type BillingService struct {
	schedules ScheduleStore
	invoices  InvoiceStore
	excel     ExcelGenerator
	pdf       PDFGenerator
	taxRate   float64
	currency  string
}

func NewBillingService(
	schedules ScheduleStore,
	invoices InvoiceStore,
	excel ExcelGenerator,
	pdf PDFGenerator,
	cfg *config.Config,
) *BillingService {
	return &BillingService{
		schedules: schedules,
		invoices:  invoices,
		excel:     excel,
		pdf:       pdf,
		taxRate:   cfg.Billing.TaxRate,
		currency:  cfg.Billing.Currency,
	}
}

type CalendarInput struct {
	CustomerID uuid.UUID
	Year       int
	Month      time.Month
	Principal  model.Principal
}

type CalendarResult struct {
	Customer  model.Customer                 `json:"customer"`
	Grid      model.MonthGrid                `json:"grid"`
	Summaries []model.ContractMonthlySummary `json:"summaries"`
}

// MonthCalendar projects one month of deliveries for a customer.
func (s *BillingService) MonthCalendar(ctx context.Context, input CalendarInput) (*CalendarResult, error) {
	if err := validateCalendarInput(input); err != nil {
		return nil, err
	}

	customer, err := s.schedules.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	contracts, err := s.schedules.ListContracts(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	temporaries, err := s.schedules.ListTemporaryDeliveries(ctx, input.CustomerID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &CalendarResult{
		Customer:  *customer,
		Grid:      schedule.ProjectMonth(input.Year, input.Month, contracts, temporaries),
		Summaries: schedule.SimplifiedMonthlySummaries(input.Year, input.Month, contracts),
	}, nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ExportCalendar renders the month grid as an Excel workbook.
func (s *BillingService) ExportCalendar(ctx context.Context, input CalendarInput) (*ExportResult, error) {
	result, err := s.MonthCalendar(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(result.Customer, result.Grid, result.Summaries)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(result.Customer.Name)
	if name == "" {
		name = result.Customer.ID.String()
	}
	fileName := fmt.Sprintf("calendar-%s-%04d%02d.xlsx", name, input.Year, input.Month)
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func validateCalendarInput(input CalendarInput) error {
	if input.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	if input.Year < 2000 || input.Year > 2100 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if input.Month < time.January || input.Month > time.December {
		return fmt.Errorf("%w: month out of range", ErrInvalidInput)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
