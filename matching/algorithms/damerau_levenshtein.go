package algorithms

// DamerauLevenshtein вычисляет расстояние Дамерау-Левенштейна
// Это улучшенная версия расстояния Левенштейна, которая также учитывает
// транспозицию (перестановку) двух соседних символов
type DamerauLevenshtein struct{}

// NewDamerauLevenshtein создает новый вычислитель расстояния Дамерау-Левенштейна
func NewDamerauLevenshtein() *DamerauLevenshtein {
	return &DamerauLevenshtein{}
}

// Distance вычисляет расстояние Дамерау-Левенштейна между двумя строками
// Возвращает минимальное количество операций (вставка, удаление, замена, транспозиция)
// для преобразования одной строки в другую
func (dl *DamerauLevenshtein) Distance(s1, s2 string) int {
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

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // удаление
				matrix[i][j-1]+1,      // вставка
				matrix[i-1][j-1]+cost, // замена
			)

			// Транспозиция соседних символов
			if i > 1 && j > 1 && r1[i-1] == r2[j-2] && r1[i-2] == r2[j-1] {
				matrix[i][j] = min(matrix[i][j], matrix[i-2][j-2]+cost)
			}
		}
	}

	return matrix[len1][len2]
}

// Similarity вычисляет нормализованную схожесть на основе расстояния Дамерау-Левенштейна
// Возвращает значение от 0.0 до 1.0
func (dl *DamerauLevenshtein) Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(dl.Distance(s1, s2))/float64(maxLen)
}
