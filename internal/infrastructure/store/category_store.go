package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/grocer-pickup/internal/domain/category"
)

type PostgresCategoryStore struct {
	db *sql.DB
}

func NewPostgresCategoryStore(db *sql.DB) *PostgresCategoryStore {
	return &PostgresCategoryStore{db: db}
}

const categoryColumns = `id, name, slug, image_url, display_order, created_at, updated_at`

func (s *PostgresCategoryStore) ListCategories(ctx context.Context) ([]category.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY display_order ASC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	result := []category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (s *PostgresCategoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*category.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (s *PostgresCategoryStore) CreateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, image_url, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.ImageURL, c.DisplayOrder,
	)
	return scanCategory(row)
}

func (s *PostgresCategoryStore) UpdateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $2, slug = $3, image_url = $4, display_order = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.Slug, c.ImageURL, c.DisplayOrder,
	)
	updated, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return updated, err
}

func (s *PostgresCategoryStore) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanCategory(row rowScanner) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}
