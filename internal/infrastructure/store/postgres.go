package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Unique constraint names from the schema in schema.go. The reference-code
// constraint is the correctness backstop for checkout's retry loop.
const (
	ConstraintOrderReference = "orders_reference_code_key"
	ConstraintProductSKU     = "products_sku_key"
	ConstraintCategorySlug   = "categories_slug_key"
	ConstraintCustomerEmail  = "customers_email_key"
)

// Connect establishes a connection to PostgreSQL.
func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint. An empty name matches any constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
