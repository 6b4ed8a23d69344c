package algorithms

import "strings"

// JaccardIndex вычисляет индекс Жаккара для сравнения множеств слов
// Индекс Жаккара = |A ∩ B| / |A ∪ B|
// Значение от 0.0 (нет общих элементов) до 1.0 (полное совпадение)
type JaccardIndex struct{}

// NewJaccardIndex создает новый вычислитель индекса Жаккара
func NewJaccardIndex() *JaccardIndex {
	return &JaccardIndex{}
}

// Similarity вычисляет индекс Жаккара для двух строк
func (j *JaccardIndex) Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}

	set1 := tokenSet(s1)
	set2 := tokenSet(s2)

	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	// Пересечение
	intersection := 0
	for token := range set1 {
		if set2[token] {
			intersection++
		}
	}

	// Объединение
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// tokenSet разбивает строку на множество слов в нижнем регистре
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}
