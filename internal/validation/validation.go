// Package validation checks records and their documents before an export starts.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/garyjia/badge-intake/internal/models"
)

// Document limits
const (
	DefaultMaxDocumentSize = 10_000_000
	relatedPersonTag       = "relatedperson"
)

// DefaultAllowedTypes are the accepted document content types
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// DocumentRules constrain every attached document
type DocumentRules struct {
	MaxSize      int
	AllowedTypes []string
}

// DefaultDocumentRules returns the 10 MB image-only rules
func DefaultDocumentRules() DocumentRules {
	return DocumentRules{
		MaxSize:      DefaultMaxDocumentSize,
		AllowedTypes: DefaultAllowedTypes,
	}
}

// FieldError is one failed check on one record
type FieldError struct {
	Index   int    `json:"index"` // 0-based record position
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors collects every field error found in a record set
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return fmt.Sprintf("validation failed: record %d: %s", e[0].Index+1, e[0].Message)
	}
	return fmt.Sprintf("validation failed: record %d: %s (and %d more)", e[0].Index+1, e[0].Message, len(e)-1)
}

// Validator runs struct-tag and document checks
type Validator struct {
	validate *validator.Validate
	rules    DocumentRules
}

// New creates a Validator; zero-valued rules fall back to the defaults
func New(rules DocumentRules) *Validator {
	if rules.MaxSize <= 0 {
		rules.MaxSize = DefaultMaxDocumentSize
	}
	if len(rules.AllowedTypes) == 0 {
		rules.AllowedTypes = DefaultAllowedTypes
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation(relatedPersonTag, func(fl validator.FieldLevel) bool {
		return models.RelatedPersonPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v, rules: rules}
}

// Records validates every record and returns Errors, or nil when all pass
func Records[R models.Record](v *Validator, records []R) error {
	var errs Errors
	for i, r := range records {
		errs = append(errs, v.Record(i, r)...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Record validates one record at position index
func (v *Validator) Record(index int, r models.Record) Errors {
	var errs Errors

	if err := v.validate.Struct(r); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Errors{{Index: index, Tag: "invalid", Message: err.Error()}}
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{
				Index:   index,
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: message(fe),
			})
		}
	}

	for _, slot := range r.Slots() {
		if fe, ok := v.checkDocument(slot, r.Document(slot)); !ok {
			fe.Index = index
			errs = append(errs, fe)
		}
	}

	return errs
}

// Document checks a single document against the size and type rules
func (v *Validator) Document(slot models.Slot, doc *models.Document) error {
	if fe, ok := v.checkDocument(slot, doc); !ok {
		return Errors{fe}
	}
	return nil
}

func (v *Validator) checkDocument(slot models.Slot, doc *models.Document) (FieldError, bool) {
	field := string(slot)
	if doc == nil {
		return FieldError{}, true
	}
	if doc.IsEmpty() {
		return FieldError{Field: field, Tag: "required", Message: field + " is empty"}, false
	}
	if doc.Size() > v.rules.MaxSize {
		return FieldError{
			Field:   field,
			Tag:     "max",
			Message: fmt.Sprintf("%s exceeds the maximum size of %d bytes", field, v.rules.MaxSize),
		}, false
	}

	detected := mimetype.Detect(doc.Data)
	for _, allowed := range v.rules.AllowedTypes {
		if detected.Is(allowed) {
			return FieldError{}, true
		}
	}
	return FieldError{
		Field:   field,
		Tag:     "mimetype",
		Message: fmt.Sprintf("%s has unsupported type %s, accepted: %s", field, detected.String(), strings.Join(v.rules.AllowedTypes, ", ")),
	}, false
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s allows at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "number":
		return field + " must contain digits only"
	case "excludesall":
		return field + " must not contain path separators"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return field + " must not contain duplicates"
	case relatedPersonTag:
		return fmt.Sprintf("%s: %s", field, models.ErrInvalidRelatedPerson.Error())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
