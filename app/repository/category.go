package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

// CategoryRepository stores named catalog labels. Categories and subcategories share
// the shape and differ only by table.
type CategoryRepository struct {
	db    DBTX
	table string
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db, table: "categories"}
}

func NewSubcategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db, table: "subcategories"}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO ` + r.table + ` (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.CreatedAt, category.UpdatedAt)
	return err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM ` + r.table + ` WHERE id = ?`
	category := &entity.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM ` + r.table + ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*entity.Category, 0)
	for rows.Next() {
		category := &entity.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
