package view

import (
	"strings"
	"unicode/utf8"

	"pasika/internal/i18n"
)

// MaxFieldLength bounds the create-apiary form fields, in runes.
const MaxFieldLength = 100

// ApiaryForm is the create-apiary dialog's input. Submitting it never
// reaches the dataset.
type ApiaryForm struct {
	Name     string
	Location string
}

// FieldError is a catalog key with an optional format argument.
type FieldError struct {
	Key string
	Arg int
}

// Validate returns per-field errors keyed by form field name.
func (f ApiaryForm) Validate() map[string]FieldError {
	errs := map[string]FieldError{}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = FieldError{Key: "form.error.name_required"}
	} else if utf8.RuneCountInString(name) > MaxFieldLength {
		errs["name"] = FieldError{Key: "form.error.too_long", Arg: MaxFieldLength}
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Location)) > MaxFieldLength {
		errs["location"] = FieldError{Key: "form.error.too_long", Arg: MaxFieldLength}
	}
	return errs
}

// LocalizeErrors renders field errors in l's language. Nil when errs is empty.
func LocalizeErrors(errs map[string]FieldError, l *i18n.Localizer) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, fe := range errs {
		if fe.Arg != 0 {
			out[field] = l.T(fe.Key, fe.Arg)
		} else {
			out[field] = l.T(fe.Key)
		}
	}
	return out
}
