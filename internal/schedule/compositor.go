package schedule

import (
	"time"

	"github.com/nurpe/delivery-billing/internal/model"
)

// Compose resolves the delivery line items for one date. A contract emits a
// line when the date falls inside its lifecycle and the effective weekly
// pattern has a non-zero quantity for the weekday. Temporary deliveries on
// the exact date always emit a line. Output order is stable: contract lines
// in input order, then temporary lines in input order.
func Compose(date time.Time, contracts []model.Contract, temporaries []model.TemporaryDelivery) []model.DeliveryLine {
	day := dateOnly(date)
	lines := make([]model.DeliveryLine, 0, len(contracts)+len(temporaries))

	for i := range contracts {
		contract := contracts[i]
		if day.Before(dateOnly(contract.StartDate)) {
			continue
		}
		if contract.CancelDate != nil && day.After(dateOnly(*contract.CancelDate)) {
			continue
		}
		quantity := Resolve(contract, day)[day.Weekday()]
		if quantity == 0 {
			continue
		}
		contractID := contract.ID
		lines = append(lines, model.DeliveryLine{
			ContractID:   &contractID,
			ProductName:  contract.ProductName,
			Quantity:     quantity,
			UnitPrice:    contract.UnitPrice,
			TotalPrice:   int64(quantity) * contract.UnitPrice,
			CancelledDay: contract.CancelDate != nil && day.Equal(dateOnly(*contract.CancelDate)),
			// A covering pause only sets the display marker; quantity and
			// price still count toward day and period totals.
			Suspended: paused(contract.Pauses, day),
		})
	}

	for _, temporary := range temporaries {
		if !dateOnly(temporary.DeliveryDate).Equal(day) {
			continue
		}
		lines = append(lines, model.DeliveryLine{
			ProductName: temporary.ProductName,
			Quantity:    temporary.Quantity,
			UnitPrice:   temporary.UnitPrice,
			TotalPrice:  int64(temporary.Quantity) * temporary.UnitPrice,
			Temporary:   true,
		})
	}
	return lines
}

func paused(pauses []model.PauseInterval, day time.Time) bool {
	for _, pause := range pauses {
		if !day.Before(dateOnly(pause.StartDate)) && !day.After(dateOnly(pause.EndDate)) {
			return true
		}
	}
	return false
}
