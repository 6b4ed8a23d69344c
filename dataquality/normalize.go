package dataquality

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper NFD-декомпозиция, удаление комбинирующих знаков,
// отбрасывание оставшихся не-ASCII символов
var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})),
)

// NormalizeText нормализует строку удалением диакритических знаков
// "référentiel" -> "referentiel", "m³" -> "m"
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	normalized, _, err := transform.String(accentStripper, text)
	if err != nil {
		return text
	}
	return normalized
}
