package importer

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

var idLike = regexp.MustCompile(`^[a-f0-9-]+$`)

// CategoryResolver maps a sheet's category reference to a category ID.
type CategoryResolver struct {
	categories []domain.Category
	bySlug     map[string]uuid.UUID
	byName     map[string]uuid.UUID
	byID       map[uuid.UUID]bool
}

// NewCategoryResolver indexes categories.
func NewCategoryResolver(categories []domain.Category) *CategoryResolver {
	r := &CategoryResolver{
		categories: categories,
		bySlug:     make(map[string]uuid.UUID, len(categories)),
		byName:     make(map[string]uuid.UUID, len(categories)),
		byID:       make(map[uuid.UUID]bool, len(categories)),
	}
	for _, c := range categories {
		r.bySlug[c.Slug] = c.ID
		r.byName[c.Name] = c.ID
		r.byID[c.ID] = true
	}
	return r
}

// Resolve tries, in order: exact slug, exact name, case-insensitive slug
// or name, then an ID-like value naming a known category.
func (r *CategoryResolver) Resolve(ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, domain.NewValidationError("categoryId", "required")
	}

	if id, ok := r.bySlug[ref]; ok {
		return id, nil
	}
	if id, ok := r.byName[ref]; ok {
		return id, nil
	}
	for _, c := range r.categories {
		if strings.EqualFold(c.Slug, ref) || strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	if lower := strings.ToLower(ref); idLike.MatchString(lower) {
		if id, err := uuid.Parse(lower); err == nil && r.byID[id] {
			return id, nil
		}
	}
	return uuid.Nil, domain.NewValidationError("categoryId", "category not found: "+ref)
}

type partnerKey struct {
	key string
	id  uuid.UUID
}

// PartnerResolver maps a manufacturer name to a partner. An unresolved
// manufacturer is not an error.
type PartnerResolver struct {
	keys  []partnerKey
	exact map[string]uuid.UUID
}

// NewPartnerResolver indexes partners by lowercased name and slug.
func NewPartnerResolver(partners []domain.Partner) *PartnerResolver {
	r := &PartnerResolver{exact: make(map[string]uuid.UUID, 2*len(partners))}
	for _, p := range partners {
		for _, k := range []string{strings.ToLower(p.Name), strings.ToLower(p.Slug)} {
			if k == "" {
				continue
			}
			if _, ok := r.exact[k]; !ok {
				r.exact[k] = p.ID
			}
			r.keys = append(r.keys, partnerKey{key: k, id: p.ID})
		}
	}
	return r
}

// Resolve returns the partner for manufacturer: exact match first, then
// containment either way. It returns nil when nothing matches.
func (r *PartnerResolver) Resolve(manufacturer string) *uuid.UUID {
	name := strings.ToLower(strings.TrimSpace(manufacturer))
	if name == "" {
		return nil
	}
	if id, ok := r.exact[name]; ok {
		return &id
	}
	for _, k := range r.keys {
		if strings.Contains(k.key, name) || strings.Contains(name, k.key) {
			id := k.id
			return &id
		}
	}
	return nil
}
