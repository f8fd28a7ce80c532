package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/delivery-billing/internal/model"
)

// ScheduleRepository loads the inputs of the schedule engine: contracts
// with their nested patterns, changes and pauses, plus one-off deliveries
// and course membership.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, course_id, name, COALESCE(address, '') AS address, COALESCE(phone, '') AS phone
		FROM customers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&customer).Error; err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (r *ScheduleRepository) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM courses
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&course).Error; err != nil {
		return nil, err
	}
	if course.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

func (r *ScheduleRepository) ListCourseCustomers(ctx context.Context, courseID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, course_id, name, COALESCE(address, '') AS address, COALESCE(phone, '') AS phone
		FROM customers
		WHERE course_id = ?
		ORDER BY name ASC, id ASC
	`, courseID).Scan(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ListContracts returns the customer's contracts with nested weekly
// patterns, pattern changes (ordered by change date then id) and pause
// intervals. Missing product references fall back to a placeholder label
// instead of failing.
func (r *ScheduleRepository) ListContracts(ctx context.Context, customerID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.customer_id,
			c.product_id,
			COALESCE(p.name, '(unknown product)') AS product_name,
			c.unit_price,
			c.start_date,
			c.cancel_date,
			c.is_active
		FROM contracts c
		LEFT JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = ?
		ORDER BY c.start_date ASC, c.id ASC
	`, customerID).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return []model.Contract{}, nil
	}

	contractIDs := make([]uuid.UUID, 0, len(contracts))
	index := make(map[uuid.UUID]int, len(contracts))
	for i, contract := range contracts {
		contractIDs = append(contractIDs, contract.ID)
		index[contract.ID] = i
	}

	var patterns []model.WeeklyPattern
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, weekday, quantity, is_active
		FROM weekly_patterns
		WHERE contract_id = ANY(?)
		ORDER BY contract_id, weekday
	`, contractIDs).Scan(&patterns).Error; err != nil {
		return nil, err
	}
	for _, pattern := range patterns {
		pos := index[pattern.ContractID]
		contracts[pos].Patterns = append(contracts[pos].Patterns, pattern)
	}

	type changeRow struct {
		ID         uuid.UUID
		ContractID uuid.UUID
		ChangeDate time.Time
		QtySun     int
		QtyMon     int
		QtyTue     int
		QtyWed     int
		QtyThu     int
		QtyFri     int
		QtySat     int
	}
	var changes []changeRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, change_date,
			qty_sun, qty_mon, qty_tue, qty_wed, qty_thu, qty_fri, qty_sat
		FROM pattern_changes
		WHERE contract_id = ANY(?)
		ORDER BY contract_id, change_date ASC, id ASC
	`, contractIDs).Scan(&changes).Error; err != nil {
		return nil, err
	}
	for _, row := range changes {
		pos := index[row.ContractID]
		contracts[pos].Changes = append(contracts[pos].Changes, model.PatternChange{
			ID:         row.ID,
			ContractID: row.ContractID,
			ChangeDate: row.ChangeDate,
			Quantities: model.WeeklyQuantities{
				row.QtySun, row.QtyMon, row.QtyTue, row.QtyWed, row.QtyThu, row.QtyFri, row.QtySat,
			},
		})
	}

	var pauses []model.PauseInterval
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, start_date, end_date
		FROM pause_intervals
		WHERE contract_id = ANY(?)
		ORDER BY contract_id, start_date ASC
	`, contractIDs).Scan(&pauses).Error; err != nil {
		return nil, err
	}
	for _, pause := range pauses {
		pos := index[pause.ContractID]
		contracts[pos].Pauses = append(contracts[pos].Pauses, pause)
	}

	return contracts, nil
}

func (r *ScheduleRepository) ListTemporaryDeliveries(
	ctx context.Context,
	customerID uuid.UUID,
	from, to time.Time,
) ([]model.TemporaryDelivery, error) {
	var deliveries []model.TemporaryDelivery
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.customer_id,
			t.product_id,
			COALESCE(p.name, '(unknown product)') AS product_name,
			t.delivery_date,
			t.quantity,
			t.unit_price
		FROM temporary_deliveries t
		LEFT JOIN products p ON p.id = t.product_id
		WHERE t.customer_id = ?
			AND t.delivery_date >= ?
			AND t.delivery_date <= ?
		ORDER BY t.delivery_date ASC, t.id ASC
	`, customerID, from, to).Scan(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}
