package filters

import (
	"strings"

	"picgrid/internal/domain"
)

// Matches reports whether img satisfies every whitespace separated sub-term
// of the already normalized search term. Each sub-term may hit a different field.
func Matches(img domain.Image, term string) bool {
	parts := strings.Fields(term)
	if len(parts) == 0 {
		return true
	}

	fields := searchableFields(img)
	for _, part := range parts {
		if !anyContains(fields, part) {
			return false
		}
	}
	return true
}

func searchableFields(img domain.Image) []string {
	fields := make([]string, 0, 3+len(img.Tags))
	fields = append(fields, strings.ToLower(img.Filename))
	if img.HasDescription() {
		fields = append(fields, strings.ToLower(*img.Description))
	}
	fields = append(fields, strings.ToLower(img.Category))
	for _, tag := range img.Tags {
		fields = append(fields, strings.ToLower(tag))
	}
	return fields
}

func anyContains(fields []string, sub string) bool {
	for _, f := range fields {
		if strings.Contains(f, sub) {
			return true
		}
	}
	return false
}
