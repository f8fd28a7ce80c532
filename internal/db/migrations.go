package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS courses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		course_id UUID REFERENCES courses(id),
		name VARCHAR(255) NOT NULL,
		address TEXT,
		phone VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		unit_price BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL REFERENCES customers(id),
		product_id UUID NOT NULL REFERENCES products(id),
		unit_price BIGINT NOT NULL,
		start_date DATE NOT NULL,
		cancel_date DATE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_contract_cancel CHECK (cancel_date IS NULL OR cancel_date >= start_date)
	);`,
	`CREATE TABLE IF NOT EXISTS weekly_patterns (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		weekday SMALLINT NOT NULL CHECK (weekday BETWEEN 0 AND 6),
		quantity INT NOT NULL CHECK (quantity >= 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (contract_id, weekday)
	);`,
	`CREATE TABLE IF NOT EXISTS pattern_changes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		change_date DATE NOT NULL,
		qty_sun INT NOT NULL DEFAULT 0,
		qty_mon INT NOT NULL DEFAULT 0,
		qty_tue INT NOT NULL DEFAULT 0,
		qty_wed INT NOT NULL DEFAULT 0,
		qty_thu INT NOT NULL DEFAULT 0,
		qty_fri INT NOT NULL DEFAULT 0,
		qty_sat INT NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pattern_changes_contract ON pattern_changes (contract_id, change_date);`,
	`CREATE TABLE IF NOT EXISTS pause_intervals (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		CONSTRAINT chk_pause_interval CHECK (end_date >= start_date)
	);`,
	`CREATE TABLE IF NOT EXISTS temporary_deliveries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL REFERENCES customers(id),
		product_id UUID NOT NULL REFERENCES products(id),
		delivery_date DATE NOT NULL,
		quantity INT NOT NULL CHECK (quantity >= 0),
		unit_price BIGINT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_temporary_deliveries_customer_date ON temporary_deliveries (customer_id, delivery_date);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL REFERENCES customers(id),
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		subtotal BIGINT NOT NULL,
		tax_rate NUMERIC(5,4) NOT NULL,
		tax BIGINT NOT NULL,
		total BIGINT NOT NULL,
		issued_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices (customer_id, issued_date);`,
	`CREATE TABLE IF NOT EXISTS invoice_details (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		invoice_id UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		position INT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		amount BIGINT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS invoice_delivery_lines (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		invoice_id UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		delivery_date DATE NOT NULL,
		position INT NOT NULL,
		contract_id UUID,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		unit_price BIGINT NOT NULL,
		total_price BIGINT NOT NULL,
		cancelled_day BOOLEAN NOT NULL DEFAULT FALSE,
		suspended BOOLEAN NOT NULL DEFAULT FALSE,
		temporary BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_delivery_lines_invoice ON invoice_delivery_lines (invoice_id, delivery_date, position);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
