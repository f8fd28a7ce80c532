package model

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyQuantities maps a weekday (time.Weekday, Sunday=0) to a delivery
// quantity. The zero value means no scheduled deliveries at all.
type WeeklyQuantities [7]int

// Contract is a customer's subscription to one product at a fixed unit
// price, delivered on a recurring weekly cadence.
type Contract struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   int64 // minor currency units
	StartDate   time.Time
	CancelDate  *time.Time // last active day, inclusive
	IsActive    bool
	Patterns    []WeeklyPattern
	Changes     []PatternChange
	Pauses      []PauseInterval
}

// WeeklyPattern is the base cadence for one weekday of a contract.
// Logically unique per (contract, weekday).
type WeeklyPattern struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Weekday    time.Weekday
	Quantity   int
	IsActive   bool
}

// PatternChange replaces the whole weekly cadence from its effective
// date onward. It does not merge with the base pattern.
type PatternChange struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	ChangeDate time.Time
	Quantities WeeklyQuantities
}

// PauseInterval marks dates where delivery is nominally suspended.
// Both bounds are inclusive.
type PauseInterval struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// TemporaryDelivery is a one-off delivery independent of any contract,
// always included on its exact date.
type TemporaryDelivery struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	DeliveryDate time.Time
	Quantity     int
	UnitPrice    int64
}
