package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryLine is the computed outcome for one product on one date after
// applying the contract lifecycle, effective weekly pattern, pauses and
// one-off additions. Derived, never persisted outside invoices.
type DeliveryLine struct {
	ContractID   *uuid.UUID `json:"contract_id"` // nil for temporary deliveries
	ProductName  string     `json:"product_name"`
	Quantity     int        `json:"quantity"`
	UnitPrice    int64      `json:"unit_price"`
	TotalPrice   int64      `json:"total_price"`
	CancelledDay bool       `json:"cancelled_day"`
	Suspended    bool       `json:"suspended"`
	Temporary    bool       `json:"temporary"`
}

// DayCell is one day of a projected month.
type DayCell struct {
	Day           int            `json:"day"`
	Date          time.Time      `json:"date"`
	Weekday       time.Weekday   `json:"weekday"`
	Lines         []DeliveryLine `json:"lines"`
	TotalQuantity int            `json:"total_quantity"`
	TotalPrice    int64          `json:"total_price"`
}

type MonthGrid struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Days          []DayCell  `json:"days"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    int64      `json:"total_price"`
}

// ContractMonthlySummary is the legacy per-contract monthly total computed
// from the base pattern only, ignoring pattern changes and pauses. The
// day-by-day MonthGrid sums are the canonical figures; this one is kept
// because existing views still render it.
type ContractMonthlySummary struct {
	ContractID  uuid.UUID `json:"contract_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Amount      int64     `json:"amount"`
}
