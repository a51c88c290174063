// Package catalog reads the category and partner lookup tables.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Repo provides read access to categories and partners.
type Repo struct {
	db postgres.Querier
}

// New creates a catalog repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListCategories returns all categories ordered by name.
func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.list(ctx, "categories")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Slug, &c.Name)
		return c, err
	})
}

// ListPartners returns all partners ordered by name.
func (r *Repo) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.list(ctx, "partners")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Partner, error) {
		var p domain.Partner
		err := row.Scan(&p.ID, &p.Slug, &p.Name)
		return p, err
	})
}

func (r *Repo) list(ctx context.Context, table string) (pgx.Rows, error) {
	sql, args, err := postgres.Builder().
		Select("id", "slug", "name").
		From(table).
		OrderBy("name", "slug").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", table, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
