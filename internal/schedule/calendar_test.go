package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/delivery-billing/internal/model"
)

func TestProjectMonthGridTotals(t *testing.T) {
	contract := milkContract()

	grid := ProjectMonth(2024, time.January, []model.Contract{contract}, nil)

	require.Len(t, grid.Days, 31)
	assert.Equal(t, 2024, grid.Year)
	assert.Equal(t, time.January, grid.Month)

	// January 2024 has five Mondays (1, 8, 15, 22, 29) and four Thursdays
	// (4, 11, 18, 25): 5*2 + 4*1 = 14 units, 14*100 in price.
	assert.Equal(t, 14, grid.TotalQuantity)
	assert.Equal(t, int64(1400), grid.TotalPrice)

	monday8 := grid.Days[7]
	assert.Equal(t, 8, monday8.Day)
	assert.Equal(t, time.Monday, monday8.Weekday)
	assert.Equal(t, 2, monday8.TotalQuantity)
	assert.Equal(t, int64(200), monday8.TotalPrice)

	tuesday9 := grid.Days[8]
	assert.Zero(t, tuesday9.TotalQuantity)
	assert.Empty(t, tuesday9.Lines)
}

func TestProjectMonthHidesContractsCancelledInEarlierMonths(t *testing.T) {
	contract := milkContract()
	cancel := date(2024, time.January, 20)
	contract.CancelDate = &cancel

	january := ProjectMonth(2024, time.January, []model.Contract{contract}, nil)
	assert.NotZero(t, january.TotalQuantity)

	february := ProjectMonth(2024, time.February, []model.Contract{contract}, nil)
	assert.Zero(t, february.TotalQuantity)
	for _, cell := range february.Days {
		assert.Empty(t, cell.Lines)
	}
}

func TestProjectMonthKeepsFutureCancellationVisible(t *testing.T) {
	contract := milkContract()
	cancel := date(2024, time.March, 10)
	contract.CancelDate = &cancel

	january := ProjectMonth(2024, time.January, []model.Contract{contract}, nil)

	assert.Equal(t, 14, january.TotalQuantity)
}

func TestProjectMonthIncludesTemporaries(t *testing.T) {
	temporary := model.TemporaryDelivery{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		ProductID:    uuid.New(),
		ProductName:  "Yogurt Pack",
		DeliveryDate: date(2024, time.January, 9),
		Quantity:     3,
		UnitPrice:    150,
	}

	grid := ProjectMonth(2024, time.January, nil, []model.TemporaryDelivery{temporary})

	tuesday9 := grid.Days[8]
	require.Len(t, tuesday9.Lines, 1)
	assert.True(t, tuesday9.Lines[0].Temporary)
	assert.Equal(t, int64(450), grid.TotalPrice)
}

func TestSimplifiedSummaryIgnoresPatternChanges(t *testing.T) {
	contract := milkContract()
	contract.Changes = []model.PatternChange{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.January, 15),
			Quantities: model.WeeklyQuantities{time.Monday: 3},
		},
	}

	summaries := SimplifiedMonthlySummaries(2024, time.January, []model.Contract{contract})

	require.Len(t, summaries, 1)
	// Base pattern only: 5 Mondays * 2 + 4 Thursdays * 1.
	assert.Equal(t, 14, summaries[0].Quantity)
	assert.Equal(t, int64(1400), summaries[0].Amount)

	// The canonical grid diverges once the change is in force.
	grid := ProjectMonth(2024, time.January, []model.Contract{contract}, nil)
	assert.NotEqual(t, summaries[0].Quantity, grid.TotalQuantity)
}

func TestSimplifiedSummaryZeroesDaysAfterCancel(t *testing.T) {
	contract := milkContract()
	cancel := date(2024, time.January, 15)
	contract.CancelDate = &cancel

	summaries := SimplifiedMonthlySummaries(2024, time.January, []model.Contract{contract})

	require.Len(t, summaries, 1)
	// Mondays 1, 8, 15 and Thursdays 4, 11 remain: 3*2 + 2*1.
	assert.Equal(t, 8, summaries[0].Quantity)
}
