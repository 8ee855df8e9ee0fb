package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName grava nomes como "Primeira letra maiúscula, resto
// minúsculo": "mARÍA josé" vira "María josé".
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
