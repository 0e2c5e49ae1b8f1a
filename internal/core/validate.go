package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one reason a form is not ready to be rendered.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every FieldError found by Form.Validate.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate is the gate applied before a document is generated. Required scalar
// fields must be non-blank, select fields must hold one of their options, and
// every line item needs a description, HSN code and units with a quantity and
// rate greater than zero. The returned error is a ValidationErrors.
func (f *Form) Validate() error {
	var errs ValidationErrors

	for _, field := range f.tpl.Fields {
		if field.Type == FieldLineItems {
			continue
		}
		value := strings.TrimSpace(f.values[field.ID])
		if field.Required && validate.Var(value, "required") != nil {
			errs = append(errs, FieldError{Field: field.ID, Message: fmt.Sprintf("Please fill in the %s field.", field.Label)})
			continue
		}
		if field.Type == FieldSelect && value != "" && len(field.Options) > 0 && !slices.Contains(field.Options, value) {
			errs = append(errs, FieldError{Field: field.ID, Message: fmt.Sprintf("Please choose a valid %s.", field.Label)})
		}
	}

	if f.tpl.SupportLineItems {
		for i, it := range f.items {
			if err := validate.Struct(it); err != nil {
				errs = append(errs, lineItemError(i, err))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// lineItemError reports missing text before non-positive numbers, matching the
// order the form checks them in.
func lineItemError(idx int, err error) FieldError {
	field := fmt.Sprintf("%s[%d]", LineItemsField, idx)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return FieldError{Field: field, Message: fmt.Sprintf("Please fill in all details for item #%d.", idx+1)}
			}
		}
	}
	return FieldError{Field: field, Message: fmt.Sprintf("Quantity and rate must be greater than zero for item #%d.", idx+1)}
}
