package csvparse

import (
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Values is one row keyed by canonical field.
type Values map[Field]string

// Get returns the value of f, or "" when absent.
func (v Values) Get(f Field) string {
	return v[f]
}

// MapFields zips positional fields onto schema. Extra trailing fields are
// ignored; a row shorter than the schema is malformed and is rejected
// rather than padded.
func MapFields(fields []string, schema []Field) (Values, error) {
	if len(fields) < len(schema) {
		return nil, &domain.RowFormatError{
			Reason: formatInsufficient(len(fields), len(schema)),
		}
	}
	v := make(Values, len(schema))
	for i, f := range schema {
		v[f] = fields[i]
	}
	return v, nil
}

// ValuesFromMap normalizes a keyed source (camelCase or snake_case keys)
// onto the canonical fields.
func ValuesFromMap(src map[string]string) Values {
	v := make(Values, len(aliases))
	for f := range aliases {
		if val := Lookup(src, f); val != "" {
			v[f] = val
		}
	}
	return v
}

// Record builds the typed record. line is the source line number.
func (v Values) Record(line int) domain.Record {
	rec := domain.Record{
		Line:         line,
		Reference:    v.Get(FieldReference),
		Manufacturer: v.Get(FieldManufacturer),
		Slug:         v.Get(FieldSlug),
		CategoryRef:  v.Get(FieldCategory),
		Status:       v.Get(FieldStatus),
		IsFeatured:   v.Get(FieldFeatured),
		FR: domain.LocalizedText{
			Name:        v.Get(FieldNameFR),
			Description: v.Get(FieldDescriptionFR),
			SpecSheet:   v.Get(FieldSpecSheetFR),
		},
		EN: domain.LocalizedText{
			Name:        v.Get(FieldNameEN),
			Description: v.Get(FieldDescriptionEN),
			SpecSheet:   v.Get(FieldSpecSheetEN),
		},
	}
	for _, f := range mediaFields {
		if u := v.Get(f); u != "" {
			rec.MediaURLs = append(rec.MediaURLs, u)
		}
	}
	if u := v.Get(FieldPDFBrochure); u != "" {
		rec.DocumentURLs = append(rec.DocumentURLs, u)
	}
	return rec
}
