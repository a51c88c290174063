package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalizedText holds the per-language text fields of a product.
type LocalizedText struct {
	Name        string
	Description string
	SpecSheet   string
}

// IsEmpty reports whether no text field is set.
func (t LocalizedText) IsEmpty() bool {
	return t.Name == "" && t.Description == "" && t.SpecSheet == ""
}

// Record is one logical product row as read from an input file.
// Records are never mutated by checks or transforms; fixes produce new values.
type Record struct {
	// Line is the 1-based physical line number in the source file (0 if unknown).
	Line int

	Reference    string
	Manufacturer string
	Slug         string
	CategoryRef  string
	Status       string
	IsFeatured   string

	FR LocalizedText
	EN LocalizedText

	// MediaURLs are image locations in column order; the first is primary.
	MediaURLs []string
	// DocumentURLs are brochure/spec-sheet PDF locations.
	DocumentURLs []string
}

// Text returns the localized text for lang.
func (r Record) Text(lang Language) LocalizedText {
	if lang == LanguageEN {
		return r.EN
	}
	return r.FR
}

// PrimaryMediaURL returns the first media URL, or "" if there is none.
func (r Record) PrimaryMediaURL() string {
	if len(r.MediaURLs) == 0 {
		return ""
	}
	return r.MediaURLs[0]
}

// Featured interprets the boolean-like IsFeatured field.
func (r Record) Featured() bool {
	switch strings.ToLower(strings.TrimSpace(r.IsFeatured)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// ProductStatus returns the parsed status, defaulting to active when blank.
func (r Record) ProductStatus() ProductStatus {
	s := strings.ToLower(strings.TrimSpace(r.Status))
	if s == "" {
		return ProductStatusActive
	}
	return ProductStatus(s)
}

// Category is a catalog category.
type Category struct {
	ID   uuid.UUID
	Slug string
	Name string
}

// Partner is a manufacturer/partner brand.
type Partner struct {
	ID   uuid.UUID
	Slug string
	Name string
}

// Product is a persisted catalog product with its translations and media.
type Product struct {
	ID           uuid.UUID
	Reference    string
	Manufacturer string
	Slug         string
	CategoryID   uuid.UUID
	PartnerID    *uuid.UUID
	Status       ProductStatus
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Translations []ProductTranslation
	Media        []ProductMedia
}

// ProductTranslation is one language's text for a product.
type ProductTranslation struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Language  Language
	LocalizedText
}

// ProductMedia is an image or document attached to a product.
type ProductMedia struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Type      MediaType
	URL       string
	IsPrimary bool
	SortOrder int
}

// ProductTexts is the persisted view used by repair and consistency passes.
type ProductTexts struct {
	ProductID    uuid.UUID
	Reference    string
	Manufacturer string
	FR           LocalizedText
	EN           LocalizedText
	HasFR        bool
	HasEN        bool
}
