package domain

// Language is a catalog content language.
type Language string

const (
	LanguageFR Language = "fr"
	LanguageEN Language = "en"
	LanguageES Language = "es"
)

func (l Language) String() string { return string(l) }

// CatalogLanguages are the languages every product carries a translation for.
// French is the primary storefront language.
var CatalogLanguages = []Language{LanguageFR, LanguageEN}

// ProductStatus is the publication status of a product.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

func (s ProductStatus) String() string { return string(s) }

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// MediaType distinguishes images from attached documents.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeDocument MediaType = "document"
)

func (t MediaType) String() string { return string(t) }
