package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// ProductInput is the validated subset of a record required for import.
type ProductInput struct {
	Reference    string `json:"referenceFournisseur" validate:"required,max=50"`
	Manufacturer string `json:"constructeur"         validate:"required"`
	NameFR       string `json:"nom_fr"               validate:"required"`
	Status       string `json:"status"               validate:"oneof=active inactive discontinued"`
}

// NewProductInput extracts the validated fields from rec.
func NewProductInput(rec domain.Record) ProductInput {
	return ProductInput{
		Reference:    strings.TrimSpace(rec.Reference),
		Manufacturer: strings.TrimSpace(rec.Manufacturer),
		NameFR:       strings.TrimSpace(rec.FR.Name),
		Status:       string(rec.ProductStatus()),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks required fields and value ranges. Violations are
// returned as a *domain.ValidationError.
func (in ProductInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate product input: %w", err)
	}

	fieldErrs := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return domain.NewValidationErrors(fieldErrs)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "invalid value"
	}
}
