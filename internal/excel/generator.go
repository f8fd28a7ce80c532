package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/delivery-billing/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the month grid into a workbook: one calendar sheet with
// a row per delivery line and a summary sheet with the legacy per-contract
// monthly totals.
func (g *Generator) Generate(customer model.Customer, grid model.MonthGrid, summaries []model.ContractMonthlySummary) ([]byte, error) {
	file := excelize.NewFile()

	calendarSheet := "Calendar"
	file.SetSheetName("Sheet1", calendarSheet)
	if err := g.writeCalendar(file, calendarSheet, customer, grid); err != nil {
		return nil, err
	}

	summarySheet := "Monthly Summary"
	file.NewSheet(summarySheet)
	if err := g.writeSummary(file, summarySheet, grid, summaries); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeCalendar(file *excelize.File, sheet string, customer model.Customer, grid model.MonthGrid) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Customer")
	set("B1", customer.Name)
	set("A2", "Month")
	set("B2", fmt.Sprintf("%04d-%02d", grid.Year, grid.Month))
	set("A3", "Total quantity")
	set("B3", grid.TotalQuantity)
	set("A4", "Total price")
	set("B4", grid.TotalPrice)

	tableRow := 6
	headers := []string{"Date", "Weekday", "Product", "Quantity", "Unit price", "Total", "Marker"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	row := tableRow + 1
	for _, day := range grid.Days {
		if len(day.Lines) == 0 {
			continue
		}
		for _, line := range day.Lines {
			set(fmt.Sprintf("A%d", row), formatDate(day.Date))
			set(fmt.Sprintf("B%d", row), day.Weekday.String())
			set(fmt.Sprintf("C%d", row), line.ProductName)
			set(fmt.Sprintf("D%d", row), line.Quantity)
			set(fmt.Sprintf("E%d", row), line.UnitPrice)
			set(fmt.Sprintf("F%d", row), line.TotalPrice)
			set(fmt.Sprintf("G%d", row), displayMarker(line))
			row++
		}
	}

	_ = file.SetColWidth(sheet, "A", "B", 14)
	_ = file.SetColWidth(sheet, "C", "C", 36)
	_ = file.SetColWidth(sheet, "D", "F", 12)
	_ = file.SetColWidth(sheet, "G", "G", 16)
	return nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, grid model.MonthGrid, summaries []model.ContractMonthlySummary) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Month")
	set("B1", fmt.Sprintf("%04d-%02d", grid.Year, grid.Month))
	set("A2", "Formula")
	set("B2", "base pattern only (legacy)")

	tableRow := 4
	headers := []string{"Product", "Quantity", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}
	for i, summary := range summaries {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), summary.ProductName)
		set(fmt.Sprintf("B%d", row), summary.Quantity)
		set(fmt.Sprintf("C%d", row), summary.Amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	return nil
}

func displayMarker(line model.DeliveryLine) string {
	var markers []string
	if line.CancelledDay {
		markers = append(markers, "cancelled")
	}
	if line.Suspended {
		markers = append(markers, "suspended")
	}
	if line.Temporary {
		markers = append(markers, "one-off")
	}
	return strings.Join(markers, ", ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
