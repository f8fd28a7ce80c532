package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/delivery-billing/internal/model"
)

func TestComposeBeforeStartEmitsNothing(t *testing.T) {
	contract := milkContract()

	lines := Compose(date(2023, time.December, 25), []model.Contract{contract}, nil)

	assert.Empty(t, lines)
}

func TestComposeZeroQuantityWeekdayEmitsNothing(t *testing.T) {
	contract := milkContract()

	// 2024-01-09 is a Tuesday; no base pattern entry.
	lines := Compose(date(2024, time.January, 9), []model.Contract{contract}, nil)

	assert.Empty(t, lines)
}

func TestComposeBaseAndChangedPattern(t *testing.T) {
	contract := milkContract()
	contract.Changes = []model.PatternChange{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.January, 15),
			Quantities: model.WeeklyQuantities{time.Monday: 3},
		},
	}

	monday8 := Compose(date(2024, time.January, 8), []model.Contract{contract}, nil)
	require.Len(t, monday8, 1)
	assert.Equal(t, 2, monday8[0].Quantity)
	assert.Equal(t, int64(200), monday8[0].TotalPrice)

	monday15 := Compose(date(2024, time.January, 15), []model.Contract{contract}, nil)
	require.Len(t, monday15, 1)
	assert.Equal(t, 3, monday15[0].Quantity)
	assert.Equal(t, int64(300), monday15[0].TotalPrice)

	// Thursday disappeared with the replacement map.
	thursday18 := Compose(date(2024, time.January, 18), []model.Contract{contract}, nil)
	assert.Empty(t, thursday18)
}

func TestComposeCancelDateBoundary(t *testing.T) {
	contract := milkContract()
	cancel := date(2024, time.January, 15) // a Monday
	contract.CancelDate = &cancel

	onCancelDay := Compose(cancel, []model.Contract{contract}, nil)
	require.Len(t, onCancelDay, 1)
	assert.True(t, onCancelDay[0].CancelledDay)
	assert.Equal(t, 2, onCancelDay[0].Quantity)

	afterCancel := Compose(date(2024, time.January, 18), []model.Contract{contract}, nil)
	assert.Empty(t, afterCancel)
}

func TestComposeCancelDayWithZeroQuantityEmitsNothing(t *testing.T) {
	contract := milkContract()
	cancel := date(2024, time.January, 16) // a Tuesday, no pattern entry
	contract.CancelDate = &cancel

	lines := Compose(cancel, []model.Contract{contract}, nil)

	assert.Empty(t, lines)
}

func TestComposePauseMarksButDoesNotSuppress(t *testing.T) {
	contract := milkContract()
	contract.Pauses = []model.PauseInterval{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			StartDate:  date(2024, time.January, 8),
			EndDate:    date(2024, time.January, 10),
		},
	}

	lines := Compose(date(2024, time.January, 8), []model.Contract{contract}, nil)

	require.Len(t, lines, 1)
	assert.True(t, lines[0].Suspended)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(200), lines[0].TotalPrice)
}

func TestComposeTemporaryDeliveryAlwaysIncluded(t *testing.T) {
	contract := milkContract()
	temporary := model.TemporaryDelivery{
		ID:           uuid.New(),
		CustomerID:   contract.CustomerID,
		ProductID:    uuid.New(),
		ProductName:  "Yogurt Pack",
		DeliveryDate: date(2024, time.January, 8),
		Quantity:     4,
		UnitPrice:    150,
	}

	lines := Compose(date(2024, time.January, 8), []model.Contract{contract}, []model.TemporaryDelivery{temporary})

	require.Len(t, lines, 2)
	// Contract lines first, temporaries after.
	assert.False(t, lines[0].Temporary)
	assert.True(t, lines[1].Temporary)
	assert.Nil(t, lines[1].ContractID)
	assert.Equal(t, int64(600), lines[1].TotalPrice)

	otherDay := Compose(date(2024, time.January, 9), []model.Contract{contract}, []model.TemporaryDelivery{temporary})
	assert.Empty(t, otherDay)
}

func TestComposeOrderIsStable(t *testing.T) {
	first := milkContract()
	second := milkContract()
	second.ProductName = "Low Fat Milk 1L"

	contracts := []model.Contract{first, second}
	lines := Compose(date(2024, time.January, 8), contracts, nil)

	require.Len(t, lines, 2)
	assert.Equal(t, first.ID, *lines[0].ContractID)
	assert.Equal(t, second.ID, *lines[1].ContractID)
}
