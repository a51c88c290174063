package csvparse

import "strings"

// Field is a canonical logical column name.
type Field string

const (
	FieldReference     Field = "referenceFournisseur"
	FieldManufacturer  Field = "constructeur"
	FieldSlug          Field = "slug"
	FieldCategory      Field = "categoryId"
	FieldStatus        Field = "status"
	FieldFeatured      Field = "isFeatured"
	FieldNameFR        Field = "nom_fr"
	FieldNameEN        Field = "nom_en"
	FieldDescriptionFR Field = "description_fr"
	FieldDescriptionEN Field = "description_en"
	FieldSpecSheetFR   Field = "ficheTechnique_fr"
	FieldSpecSheetEN   Field = "ficheTechnique_en"
	FieldImageURL      Field = "imageUrl"
	FieldImageURL2     Field = "imageUrl2"
	FieldImageURL3     Field = "imageUrl3"
	FieldPDFBrochure   Field = "pdfBrochureUrl"
)

// DefaultSchema is the column order of the catalog import sheet.
var DefaultSchema = []Field{
	FieldReference,
	FieldManufacturer,
	FieldSlug,
	FieldCategory,
	FieldStatus,
	FieldFeatured,
	FieldNameFR,
	FieldNameEN,
	FieldDescriptionFR,
	FieldDescriptionEN,
	FieldSpecSheetFR,
	FieldSpecSheetEN,
	FieldImageURL,
}

// mediaFields are read in order into Record.MediaURLs.
var mediaFields = []Field{FieldImageURL, FieldImageURL2, FieldImageURL3}

// aliases lists alternate external names per field, in lookup priority
// order. The canonical name is always tried first.
var aliases = map[Field][]string{
	FieldReference:     {"reference_fournisseur", "reference"},
	FieldManufacturer:  {"manufacturer"},
	FieldCategory:      {"category_id", "category"},
	FieldFeatured:      {"is_featured", "featured"},
	FieldNameFR:        {"name_fr"},
	FieldNameEN:        {"name_en"},
	FieldSpecSheetFR:   {"fiche_technique_fr"},
	FieldSpecSheetEN:   {"fiche_technique_en"},
	FieldImageURL:      {"image_url", "mediaUrl", "media_url"},
	FieldImageURL2:     {"image_url_2", "image_url2"},
	FieldImageURL3:     {"image_url_3", "image_url3"},
	FieldPDFBrochure:   {"pdf_brochure_url"},
	FieldSlug:          {},
	FieldStatus:        {},
	FieldDescriptionFR: {},
	FieldDescriptionEN: {},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]Field {
	idx := make(map[string]Field)
	for f, names := range aliases {
		for _, n := range names {
			idx[n] = f
		}
	}
	return idx
}

// Canonical maps an external column name to its canonical field. Names
// that are neither canonical nor a known alias are returned unchanged with
// ok=false so that unknown columns survive a read/write cycle.
func Canonical(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	if _, ok := aliases[Field(name)]; ok {
		return Field(name), true
	}
	if f, ok := aliasIndex[name]; ok {
		return f, true
	}
	return Field(name), false
}

// SchemaFromHeader canonicalizes a header line into a positional schema.
func SchemaFromHeader(header []string) []Field {
	schema := make([]Field, len(header))
	for i, name := range header {
		schema[i], _ = Canonical(name)
	}
	return schema
}

// Lookup reads f from a keyed source such as a decoded JSON object: the
// canonical name first, then each alias in priority order. Missing keys
// yield "".
func Lookup(src map[string]string, f Field) string {
	if v, ok := src[string(f)]; ok {
		return strings.TrimSpace(v)
	}
	for _, alias := range aliases[f] {
		if v, ok := src[alias]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
