package schedule

import (
	"time"

	"github.com/nurpe/delivery-billing/internal/model"
)

// ProjectMonth composes every day of the month into a grid with per-day and
// whole-month quantity/price totals.
func ProjectMonth(year int, month time.Month, contracts []model.Contract, temporaries []model.TemporaryDelivery) model.MonthGrid {
	visible := visibleContracts(year, month, contracts)
	daysInMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()

	grid := model.MonthGrid{
		Year:  year,
		Month: month,
		Days:  make([]model.DayCell, 0, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cell := model.DayCell{
			Day:     day,
			Date:    date,
			Weekday: date.Weekday(),
			Lines:   Compose(date, visible, temporaries),
		}
		for _, line := range cell.Lines {
			cell.TotalQuantity += line.Quantity
			cell.TotalPrice += line.TotalPrice
		}
		grid.TotalQuantity += cell.TotalQuantity
		grid.TotalPrice += cell.TotalPrice
		grid.Days = append(grid.Days, cell)
	}
	return grid
}

// visibleContracts drops contracts whose cancel month lies strictly before
// the viewed month. A contract cancelled inside the viewed month or later
// stays on the grid.
func visibleContracts(year int, month time.Month, contracts []model.Contract) []model.Contract {
	visible := make([]model.Contract, 0, len(contracts))
	for _, contract := range contracts {
		if contract.CancelDate != nil {
			cancelYear, cancelMonth, _ := dateOnly(*contract.CancelDate).Date()
			if cancelYear < year || (cancelYear == year && cancelMonth < month) {
				continue
			}
		}
		visible = append(visible, contract)
	}
	return visible
}

// SimplifiedMonthlySummaries computes per-contract monthly totals from the
// base pattern alone, ignoring pattern changes and pauses and zeroing days
// outside the contract lifecycle. This is the legacy formula some views
// still render; it diverges from the grid sums once a pattern change is in
// force, and the day-by-day grid is the canonical figure.
func SimplifiedMonthlySummaries(year int, month time.Month, contracts []model.Contract) []model.ContractMonthlySummary {
	visible := visibleContracts(year, month, contracts)
	daysInMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()

	summaries := make([]model.ContractMonthlySummary, 0, len(visible))
	for _, contract := range visible {
		base := baseQuantities(contract)
		summary := model.ContractMonthlySummary{
			ContractID:  contract.ID,
			ProductName: contract.ProductName,
		}
		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if date.Before(dateOnly(contract.StartDate)) {
				continue
			}
			if contract.CancelDate != nil && date.After(dateOnly(*contract.CancelDate)) {
				continue
			}
			summary.Quantity += base[date.Weekday()]
		}
		summary.Amount = int64(summary.Quantity) * contract.UnitPrice
		summaries = append(summaries, summary)
	}
	return summaries
}
