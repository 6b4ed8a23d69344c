package dataquality

import (
	"regexp"
	"strings"
)

// Значения показателей качества данных
const (
	CompletenessCompleted = "Completed"
	CompletenessMissing   = "Missing"
	UniquenessUnique      = "Unique"
	UniquenessDuplicates  = "Duplicates"
)

var (
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	digitsRe    = regexp.MustCompile(`[0-9]`)
)

// GeneratePattern строит шаблон значения: буквы заменяются на x, цифры на 9
// "Benne 10m3" -> "xxxxx 99x9"
func GeneratePattern(text string) string {
	text = NormalizeText(text)
	if text == "" {
		return ""
	}

	pattern := strings.ToLower(text)
	pattern = lowercaseRe.ReplaceAllString(pattern, "x")
	pattern = digitsRe.ReplaceAllString(pattern, "9")
	return pattern
}

// Completeness возвращает для каждого значения Completed или Missing
func Completeness(values []string) []string {
	result := make([]string, len(values))
	for i, value := range values {
		if value == "" {
			result[i] = CompletenessMissing
		} else {
			result[i] = CompletenessCompleted
		}
	}
	return result
}

// Uniqueness возвращает для каждого значения Unique или Duplicates
// в зависимости от количества его вхождений
func Uniqueness(values []string) []string {
	counts := make(map[string]int, len(values))
	for _, value := range values {
		counts[value]++
	}

	result := make([]string, len(values))
	for i, value := range values {
		if counts[value] == 1 {
			result[i] = UniquenessUnique
		} else {
			result[i] = UniquenessDuplicates
		}
	}
	return result
}
