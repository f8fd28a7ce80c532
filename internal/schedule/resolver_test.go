package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/delivery-billing/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func milkContract() model.Contract {
	contractID := uuid.New()
	return model.Contract{
		ID:          contractID,
		CustomerID:  uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Whole Milk 1L",
		UnitPrice:   100,
		StartDate:   date(2024, time.January, 1),
		IsActive:    true,
		Patterns: []model.WeeklyPattern{
			{ID: uuid.New(), ContractID: contractID, Weekday: time.Monday, Quantity: 2, IsActive: true},
			{ID: uuid.New(), ContractID: contractID, Weekday: time.Thursday, Quantity: 1, IsActive: true},
		},
	}
}

func TestResolveBeforeStartIsZero(t *testing.T) {
	contract := milkContract()

	quantities := Resolve(contract, date(2023, time.December, 31))

	assert.Equal(t, model.WeeklyQuantities{}, quantities)
}

func TestResolveBasePattern(t *testing.T) {
	contract := milkContract()

	quantities := Resolve(contract, date(2024, time.January, 8))

	assert.Equal(t, 2, quantities[time.Monday])
	assert.Equal(t, 1, quantities[time.Thursday])
	assert.Equal(t, 0, quantities[time.Sunday])
}

func TestResolveInactivePatternDefaultsToZero(t *testing.T) {
	contract := milkContract()
	contract.Patterns[1].IsActive = false

	quantities := Resolve(contract, date(2024, time.January, 8))

	assert.Equal(t, 0, quantities[time.Thursday])
}

func TestResolveChangeReplacesBaseEntirely(t *testing.T) {
	contract := milkContract()
	contract.Changes = []model.PatternChange{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.January, 15),
			Quantities: model.WeeklyQuantities{time.Monday: 3},
		},
	}

	before := Resolve(contract, date(2024, time.January, 14))
	assert.Equal(t, 2, before[time.Monday])
	assert.Equal(t, 1, before[time.Thursday])

	after := Resolve(contract, date(2024, time.January, 15))
	assert.Equal(t, 3, after[time.Monday])
	// Replacement map carries no Thursday entry, so the base one is gone.
	assert.Equal(t, 0, after[time.Thursday])
}

func TestResolveLatestChangeWins(t *testing.T) {
	contract := milkContract()
	contract.Changes = []model.PatternChange{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.February, 1),
			Quantities: model.WeeklyQuantities{time.Monday: 5},
		},
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.January, 10),
			Quantities: model.WeeklyQuantities{time.Monday: 4},
		},
	}

	quantities := Resolve(contract, date(2024, time.February, 12))

	assert.Equal(t, 5, quantities[time.Monday])
}

func TestResolveTieBrokenByRecordID(t *testing.T) {
	contract := milkContract()
	low := uuid.UUID{0x01}
	high := uuid.UUID{0xff}
	contract.Changes = []model.PatternChange{
		{ID: high, ContractID: contract.ID, ChangeDate: date(2024, time.January, 10), Quantities: model.WeeklyQuantities{time.Monday: 9}},
		{ID: low, ContractID: contract.ID, ChangeDate: date(2024, time.January, 10), Quantities: model.WeeklyQuantities{time.Monday: 7}},
	}

	first := Resolve(contract, date(2024, time.January, 10))
	second := Resolve(contract, date(2024, time.January, 10))

	assert.Equal(t, 9, first[time.Monday])
	assert.Equal(t, first, second)
}

func TestResolveIsPure(t *testing.T) {
	contract := milkContract()
	contract.Changes = []model.PatternChange{
		{
			ID:         uuid.New(),
			ContractID: contract.ID,
			ChangeDate: date(2024, time.January, 15),
			Quantities: model.WeeklyQuantities{time.Monday: 3},
		},
	}

	target := date(2024, time.January, 22)
	first := Resolve(contract, target)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(contract, target))
	}
}
