package stubapi

import (
	"strings"
	"time"
	"unicode"
)

const maxNameLength = 255

// validationErrors maps a field to its messages, as the catalog returns them.
type validationErrors map[string][]string

func (v validationErrors) add(field, msg string) {
	v[field] = append(v[field], msg)
}

var loadDateLayouts = []string{dateLayout, "2006-01-02", time.RFC3339}

// validateInput checks a create (partial=false) or update (partial=true) payload.
func validateInput(in ProductInput, partial bool) validationErrors {
	errs := validationErrors{}

	switch {
	case in.Name == nil:
		if !partial {
			errs.add("name", "The name field is required.")
		}
	case strings.TrimSpace(*in.Name) == "":
		errs.add("name", "The name field is required.")
	case len([]rune(*in.Name)) > maxNameLength:
		errs.add("name", "The name field must not be greater than 255 characters.")
	}

	switch {
	case in.CountryCode == nil:
		if !partial {
			errs.add("country_code", "The country code field is required.")
		}
	case !isCountryCode(*in.CountryCode):
		errs.add("country_code", "The country code field must be 2 letters.")
	}

	if in.LoadDate != nil && *in.LoadDate != "" && !isDate(*in.LoadDate) {
		errs.add("load_date", "The load date field must be a valid date.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDate(s string) bool {
	for _, layout := range loadDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// normalizeLoadDate rewrites accepted dates into the stored layout.
func normalizeLoadDate(s string) string {
	for _, layout := range loadDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(dateLayout)
		}
	}
	return ""
}
