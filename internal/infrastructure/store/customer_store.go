package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/grocer-pickup/internal/domain/customer"
)

type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

const customerColumns = `id, email, name, password_hash, created_at, last_login`

func (s *PostgresCustomerStore) CreateCustomer(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO customers (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+customerColumns,
		c.Email, c.Name, c.PasswordHash,
	)
	return scanCustomer(row)
}

func (s *PostgresCustomerStore) GetCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (s *PostgresCustomerStore) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (s *PostgresCustomerStore) RecordCustomerLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE customers SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("record customer login: %w", err)
	}
	return nil
}

func (s *PostgresCustomerStore) GetAdminByUsername(ctx context.Context, username string) (*customer.Admin, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM admin_users WHERE username = $1`,
		username,
	)
	var a customer.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return &a, nil
}

func (s *PostgresCustomerStore) RecordAdminLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE admin_users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("record admin login: %w", err)
	}
	return nil
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt, &c.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}
