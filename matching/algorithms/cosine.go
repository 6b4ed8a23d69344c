package algorithms

import (
	"math"
	"strings"
)

// CosineSimilarity вычисляет косинусное сходство строк
// Строки представляются как TF-векторы (частоты слов)
type CosineSimilarity struct{}

// NewCosineSimilarity создает новый вычислитель косинусного сходства
func NewCosineSimilarity() *CosineSimilarity {
	return &CosineSimilarity{}
}

// Similarity вычисляет косинусное сходство между двумя строками
// Возвращает значение от 0.0 до 1.0
func (cs *CosineSimilarity) Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	vec1 := termFrequencies(s1)
	vec2 := termFrequencies(s2)

	if len(vec1) == 0 && len(vec2) == 0 {
		return 1.0
	}
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0.0
	}

	// Скалярное произведение по общим термам
	var dot float64
	for term, freq1 := range vec1 {
		if freq2, ok := vec2[term]; ok {
			dot += float64(freq1) * float64(freq2)
		}
	}

	norm1 := vectorNorm(vec1)
	norm2 := vectorNorm(vec2)
	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}

	return dot / (norm1 * norm2)
}

// termFrequencies строит TF-вектор строки
func termFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		freq[word]++
	}
	return freq
}

// vectorNorm вычисляет евклидову норму TF-вектора
func vectorNorm(vec map[string]int) float64 {
	var sum float64
	for _, freq := range vec {
		sum += float64(freq) * float64(freq)
	}
	return math.Sqrt(sum)
}
