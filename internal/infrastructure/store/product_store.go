package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/grocer-pickup/internal/domain/product"
)

type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

const productColumns = `id, name, description, category_id, price, stock_quantity, image_url, sku, is_active, created_at, updated_at`

func (s *PostgresProductStore) ListProducts(ctx context.Context, f ProductFilter) ([]product.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products`)

	conds := []string{}
	args := []any{}
	if !f.IncludeInactive {
		conds = append(conds, `is_active = true`)
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf(`category_id = $%d`, len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf(`(name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	fmt.Fprintf(&sb, ` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *PostgresProductStore) GetProductByID(ctx context.Context, id int64) (*product.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *PostgresProductStore) ListProductsByCategorySlug(ctx context.Context, slug string, limit, offset int) ([]product.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.category_id, p.price, p.stock_quantity,
		       p.image_url, p.sku, p.is_active, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.slug = $1 AND p.is_active = true
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		slug, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *PostgresProductStore) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, category_id, price, stock_quantity, image_url, sku, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		p.Name, p.Description, p.CategoryID, p.Price, p.StockQuantity, p.ImageURL, nullIfEmpty(p.SKU), p.IsActive,
	)
	return scanProduct(row)
}

func (s *PostgresProductStore) UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, category_id = $4, price = $5,
		    stock_quantity = $6, image_url = $7, sku = $8, is_active = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.CategoryID, p.Price, p.StockQuantity, p.ImageURL, nullIfEmpty(p.SKU), p.IsActive,
	)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return updated, err
}

func (s *PostgresProductStore) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func collectProducts(rows *sql.Rows) ([]product.Product, error) {
	result := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanProduct(row rowScanner) (*product.Product, error) {
	var p product.Product
	var sku sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Price, &p.StockQuantity,
		&p.ImageURL, &sku, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.SKU = sku.String
	return &p, nil
}

// nullIfEmpty keeps the unique index on sku from tripping over many rows
// without one. Postgres treats NULLs as distinct.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
