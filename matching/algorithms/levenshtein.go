package algorithms

// Levenshtein вычисляет классическое расстояние редактирования
// Поддерживаемые операции: вставка, удаление, замена символа
type Levenshtein struct{}

// NewLevenshtein создает новый вычислитель расстояния Левенштейна
func NewLevenshtein() *Levenshtein {
	return &Levenshtein{}
}

// Distance вычисляет расстояние Левенштейна между двумя строками
// Возвращает минимальное количество операций для преобразования одной строки в другую
func (l *Levenshtein) Distance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	// Крайние случаи
	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	// Достаточно двух строк матрицы динамического программирования
	prev := make([]int, len2+1)
	curr := make([]int, len2+1)

	for j := 0; j <= len2; j++ {
		prev[j] = j
	}

	for i := 1; i <= len1; i++ {
		curr[0] = i
		for j := 1; j <= len2; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // удаление
				curr[j-1]+1,    // вставка
				prev[j-1]+cost, // замена
			)
		}
		prev, curr = curr, prev
	}

	return prev[len2]
}

// Similarity вычисляет нормализованную схожесть на основе расстояния Левенштейна
// Возвращает значение от 0.0 до 1.0
func (l *Levenshtein) Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(l.Distance(s1, s2))/float64(maxLen)
}
