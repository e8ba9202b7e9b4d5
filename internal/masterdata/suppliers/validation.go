package suppliers

import (
	"strings"
	"unicode/utf8"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

const (
	maxNameLength    = 200
	maxTypeLength    = 50
	maxContactLength = 500
)

// validate runs after NormalizeName so the length checks see the stored form.
func (s *Service) validate(sup Supplier) error {
	if sup.Name == "" {
		return shared.Validationf("supplier name is required")
	}
	if utf8.RuneCountInString(sup.Name) > maxNameLength {
		return shared.Validationf("supplier name exceeds %d characters", maxNameLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(sup.Type)) > maxTypeLength {
		return shared.Validationf("supplier type exceeds %d characters", maxTypeLength)
	}
	for field, value := range map[string]string{"contact info": sup.ContactInfo, "address": sup.Address} {
		if utf8.RuneCountInString(value) > maxContactLength {
			return shared.Validationf("supplier %s exceeds %d characters", field, maxContactLength)
		}
	}
	return nil
}
