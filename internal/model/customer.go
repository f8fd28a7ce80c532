package model

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID  `json:"id"`
	CourseID *uuid.UUID `json:"course_id"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone"`
}

// Course is a delivery route grouping customers for batch operations.
type Course struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
}
