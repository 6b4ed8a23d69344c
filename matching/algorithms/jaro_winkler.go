package algorithms

import "math"

// JaroWinkler вычисляет сходство Jaro-Winkler
// Модификация алгоритма Jaro с бонусом за общий префикс,
// хорошо работает на коротких строках с опечатками в середине
type JaroWinkler struct{}

// NewJaroWinkler создает новый вычислитель сходства Jaro-Winkler
func NewJaroWinkler() *JaroWinkler {
	return &JaroWinkler{}
}

// Jaro вычисляет базовое сходство Jaro между двумя строками
func (jw *JaroWinkler) Jaro(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	// Окно поиска совпадений
	matchWindow := max(len1, len2)/2 - 1
	if matchWindow < 0 {
		matchWindow = 0
	}

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)
	matches := 0

	for i := 0; i < len1; i++ {
		start := max(0, i-matchWindow)
		end := min(len2, i+matchWindow+1)

		for j := start; j < end; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Подсчет транспозиций
	transpositions := 0
	k := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	return (float64(matches)/float64(len1) +
		float64(matches)/float64(len2) +
		(float64(matches)-float64(transpositions)/2.0)/float64(matches)) / 3.0
}

// Similarity вычисляет сходство Jaro-Winkler
// Бонус за префикс применяется только при базовом сходстве Jaro >= 0.7
func (jw *JaroWinkler) Similarity(s1, s2 string) float64 {
	jaro := jw.Jaro(s1, s2)

	if jaro < 0.7 {
		return jaro
	}

	// Длина общего префикса (максимум 4 символа)
	prefixLen := 0
	maxPrefix := 4
	r1, r2 := []rune(s1), []rune(s2)
	minLen := min(len(r1), len(r2))

	for i := 0; i < minLen && i < maxPrefix; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefixLen++
	}

	// Коэффициент масштабирования префикса (стандартные 0.1)
	p := 0.1
	winkler := jaro + float64(prefixLen)*p*(1.0-jaro)

	return math.Min(winkler, 1.0)
}
