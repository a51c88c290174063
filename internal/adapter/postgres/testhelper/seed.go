package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// uniqueSuffix returns a short unique string for non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCategory inserts a category with a unique slug.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()

	suffix := uniqueSuffix()
	c := domain.Category{ID: uuid.New(), Slug: "instruments-" + suffix, Name: "Instruments " + suffix}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, slug, name) VALUES ($1, $2, $3)`,
		c.ID, c.Slug, c.Name,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// SeedPartner inserts a partner with a unique slug.
func SeedPartner(t *testing.T, pool *pgxpool.Pool) domain.Partner {
	t.Helper()

	suffix := uniqueSuffix()
	p := domain.Partner{ID: uuid.New(), Slug: "acme-" + suffix, Name: "Acme " + suffix}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO partners (id, slug, name) VALUES ($1, $2, $3)`,
		p.ID, p.Slug, p.Name,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPartner: %v", err)
	}
	return p
}

// UniqueReference returns a product reference not used by other tests.
func UniqueReference(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}
