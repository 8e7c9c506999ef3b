package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/newsletter-press/internal/models"
)

// FieldError represents a single validation error
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a set of field errors that can travel as a single error value
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateEdition validates an authoring payload. The stored model accepts
// any strings; these checks gate only the admin surface.
func ValidateEdition(in *models.EditionInput) Errors {
	var errors Errors

	// Validate date
	if in.Date == "" {
		errors = append(errors, FieldError{Field: "date", Message: "date is required"})
	} else if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		errors = append(errors, FieldError{Field: "date", Message: "date must be YYYY-MM-DD", Value: in.Date})
	}

	// Validate language
	language := strings.ToLower(strings.TrimSpace(in.Language))
	if language == "" {
		errors = append(errors, FieldError{Field: "language", Message: "language is required"})
	} else if !models.SupportedLanguages[language] {
		errors = append(errors, FieldError{
			Field:   "language",
			Message: "language must be one of: en, fr",
			Value:   in.Language,
		})
	}

	// Validate title
	if strings.TrimSpace(in.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}

	// Validate content: markdown or HTML, not both
	if in.ContentMD == "" && in.ContentHTML == "" {
		errors = append(errors, FieldError{Field: "content_md", Message: "content_md or content_html is required"})
	}
	if in.ContentMD != "" && in.ContentHTML != "" {
		errors = append(errors, FieldError{Field: "content_html", Message: "content_md and content_html are mutually exclusive"})
	}

	return errors
}
