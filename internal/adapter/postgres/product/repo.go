// Package product implements product persistence using PostgreSQL.
package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Repo stores products with their translations and media.
type Repo struct {
	db postgres.Querier
}

// New creates a product repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListReferences returns every stored product reference.
func (r *Repo) ListReferences(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select("reference").
		From("products").
		OrderBy("reference").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list references: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return refs, nil
}

// Create inserts p, its translations and its media. Call it inside
// TxManager.RunInTx so that a failure leaves no partial product.
func (r *Repo) Create(ctx context.Context, p *domain.Product) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert("products").
		Columns("id", "reference", "manufacturer", "slug", "category_id", "partner_id", "status", "is_featured").
		Values(p.ID, p.Reference, p.Manufacturer, p.Slug, p.CategoryID, p.PartnerID, string(p.Status), p.IsFeatured).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if err := q.QueryRow(ctx, sql, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return postgres.MapError(err, "product", p.Reference)
	}

	if len(p.Translations) > 0 {
		ins := postgres.Builder().
			Insert("product_translations").
			Columns("id", "product_id", "language", "name", "description", "spec_sheet")
		for _, t := range p.Translations {
			ins = ins.Values(t.ID, p.ID, string(t.Language), t.Name, t.Description, t.SpecSheet)
		}
		sql, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert translations: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "product translation", p.Reference)
		}
	}

	if len(p.Media) > 0 {
		ins := postgres.Builder().
			Insert("product_media").
			Columns("id", "product_id", "type", "url", "is_primary", "sort_order")
		for _, m := range p.Media {
			ins = ins.Values(m.ID, p.ID, string(m.Type), m.URL, m.IsPrimary, m.SortOrder)
		}
		sql, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert media: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "product media", p.Reference)
		}
	}

	return nil
}

const listTextsSQL = `
SELECT p.id, p.reference, p.manufacturer,
       fr.id IS NOT NULL, COALESCE(fr.name, ''), COALESCE(fr.description, ''), COALESCE(fr.spec_sheet, ''),
       en.id IS NOT NULL, COALESCE(en.name, ''), COALESCE(en.description, ''), COALESCE(en.spec_sheet, '')
FROM products p
LEFT JOIN product_translations fr ON fr.product_id = p.id AND fr.language = 'fr'
LEFT JOIN product_translations en ON en.product_id = p.id AND en.language = 'en'
ORDER BY p.reference`

// ListTexts returns the French and English texts of every product.
func (r *Repo) ListTexts(ctx context.Context) ([]domain.ProductTexts, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listTextsSQL)
	if err != nil {
		return nil, fmt.Errorf("list product texts: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductTexts
	for rows.Next() {
		var t domain.ProductTexts
		if err := rows.Scan(
			&t.ProductID, &t.Reference, &t.Manufacturer,
			&t.HasFR, &t.FR.Name, &t.FR.Description, &t.FR.SpecSheet,
			&t.HasEN, &t.EN.Name, &t.EN.Description, &t.EN.SpecSheet,
		); err != nil {
			return nil, fmt.Errorf("scan product texts: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list product texts: %w", err)
	}
	return out, nil
}

// UpdateTranslation replaces the lang text of a product, creating the row
// when the product has none for that language.
func (r *Repo) UpdateTranslation(ctx context.Context, productID uuid.UUID, lang domain.Language, text domain.LocalizedText) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert("product_translations").
		Columns("id", "product_id", "language", "name", "description", "spec_sheet").
		Values(uuid.New(), productID, string(lang), text.Name, text.Description, text.SpecSheet).
		Suffix(`ON CONFLICT (product_id, language) DO UPDATE
SET name = EXCLUDED.name, description = EXCLUDED.description,
    spec_sheet = EXCLUDED.spec_sheet, updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert translation: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "product", productID.String())
	}
	return nil
}
