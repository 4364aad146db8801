package usecase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeCode limpia y pasa a mayúsculas SKUs y códigos de ubicación ("a-01 " → "A-01").
func normalizeCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
