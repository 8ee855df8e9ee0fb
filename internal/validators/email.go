package validators

import "strings"

// NormalizeEmail guarda emails em minúsculas; vazio vira NULL.
func NormalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}

	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeOptional apara o texto; vazio vira NULL.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
