package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/grocer-pickup/internal/domain/order"
)

// PostgresOrderStore implements OrderStore over PostgreSQL. Line items are
// stored as a JSONB snapshot inside the order row and schema-checked when
// read back.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

const orderColumns = `id, reference_code, customer_id, items, total_price, status, created_at, updated_at, completed_at`

func (s *PostgresOrderStore) InsertOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (reference_code, customer_id, items, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+orderColumns,
		o.ReferenceCode, o.CustomerID, items, o.TotalPrice, o.Status, o.CreatedAt,
	)
	return scanOrder(row)
}

func (s *PostgresOrderStore) GetOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return o, err
}

func (s *PostgresOrderStore) GetOrderByReference(ctx context.Context, code string) (*order.WithCustomer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.reference_code, o.customer_id, o.items, o.total_price, o.status,
		       o.created_at, o.updated_at, o.completed_at,
		       c.id, c.name, c.email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.reference_code = $1`,
		code,
	)
	o, err := scanOrderWithCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return o, err
}

func (s *PostgresOrderStore) ListOrders(ctx context.Context, f OrderFilter) ([]order.WithCustomer, error) {
	query := `
		SELECT o.id, o.reference_code, o.customer_id, o.items, o.total_price, o.status,
		       o.created_at, o.updated_at, o.completed_at,
		       c.id, c.name, c.email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id`

	args := []any{}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += ` WHERE o.status = $1`
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	result := []order.WithCustomer{}
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (s *PostgresOrderStore) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query customer orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (s *PostgresOrderStore) UpdateOrderStatusIfPending(ctx context.Context, id int64, status order.Status, now time.Time) (*order.Order, error) {
	var completedAt *time.Time
	if status == order.StatusCompleted {
		completedAt = &now
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $2, updated_at = $3, completed_at = COALESCE($4, completed_at)
		WHERE id = $1 AND status = 'pending'
		RETURNING `+orderColumns,
		id, status, now, completedAt,
	)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		// Either the order does not exist or it already left pending.
		return nil, nil
	}
	return o, err
}

func (s *PostgresOrderStore) OrderStats(ctx context.Context, since time.Time) (order.Stats, error) {
	var stats order.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed' AND created_at >= $1), 0)
		FROM orders`,
		since,
	).Scan(&stats.Pending, &stats.Completed, &stats.Cancelled, &stats.TodayRevenue)
	if err != nil {
		return order.Stats{}, fmt.Errorf("aggregate order stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var o order.Order
	var items []byte
	err := row.Scan(
		&o.ID, &o.ReferenceCode, &o.CustomerID, &items, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode line items for order %d: %w", o.ID, err)
	}
	return &o, nil
}

func scanOrderWithCustomer(row rowScanner) (*order.WithCustomer, error) {
	var o order.WithCustomer
	var items []byte
	err := row.Scan(
		&o.ID, &o.ReferenceCode, &o.CustomerID, &items, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
		&o.Customer.ID, &o.Customer.Name, &o.Customer.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode line items for order %d: %w", o.ID, err)
	}
	return &o, nil
}
