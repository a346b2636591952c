package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normaliza para busca: minúsculas e sem acentos ("Munição" ⇒ "municao").
func fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// matches busca insensível a caixa e acento em qualquer um dos campos.
func matches(query string, fields ...string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}
