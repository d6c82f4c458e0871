package store

import "database/sql"

// schemaDDL creates the tables on first boot. Statements are idempotent so
// restarting against an initialized database is a no-op.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		slug          TEXT NOT NULL,
		image_url     TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT categories_slug_key UNIQUE (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		category_id    BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		price          BIGINT NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		image_url      TEXT NOT NULL DEFAULT '',
		sku            TEXT,
		is_active      BOOLEAN NOT NULL DEFAULT true,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT products_sku_key UNIQUE (sku)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login    TIMESTAMPTZ,
		CONSTRAINT customers_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login    TIMESTAMPTZ,
		CONSTRAINT admin_users_username_key UNIQUE (username),
		CONSTRAINT admin_users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             BIGSERIAL PRIMARY KEY,
		reference_code TEXT NOT NULL,
		customer_id    BIGINT NOT NULL REFERENCES customers(id),
		items          JSONB NOT NULL,
		total_price    BIGINT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'pending',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at   TIMESTAMPTZ,
		CONSTRAINT orders_reference_code_key UNIQUE (reference_code)
	)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS products_category_id_idx ON products (category_id)`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
