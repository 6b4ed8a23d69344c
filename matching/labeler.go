package matching

import "strings"

// ClusterLabeler выводит каноническую метку кластера из меток его участников
type ClusterLabeler struct {
	postprocess      func(string) string
	fallbackShortest bool
}

// NewClusterLabeler создает новый построитель канонических меток
// postprocess - косметические правила перезаписи итоговой метки (может быть nil)
// fallbackShortest - при пустом пересечении слов использовать самую короткую
// метку участника вместо пустой строки
func NewClusterLabeler(postprocess func(string) string, fallbackShortest bool) *ClusterLabeler {
	return &ClusterLabeler{
		postprocess:      postprocess,
		fallbackShortest: fallbackShortest,
	}
}

// Label вычисляет каноническую метку кластера
// memberLabels - отображаемые метки участников в детерминированном порядке
// (порядок ключей уникальности); порядок слов берется из первой метки
func (cl *ClusterLabeler) Label(memberLabels []string) string {
	if len(memberLabels) == 0 {
		return ""
	}

	label := CommonWordsWithOrder(memberLabels)

	// Пустое пересечение возможно, когда транзитивная цепочка склеила
	// непохожие метки; эталонное поведение - пустая метка
	if label == "" && cl.fallbackShortest {
		label = shortestLabel(memberLabels)
	}

	if cl.postprocess != nil {
		label = cl.postprocess(label)
	}

	return label
}

// CommonWordsWithOrder возвращает слова, общие для всех меток,
// в порядке их следования в первой метке
// Слова сравниваются в нижнем регистре, разделитель - пробелы
func CommonWordsWithOrder(labels []string) string {
	if len(labels) == 0 {
		return ""
	}

	// Пересечение множеств слов всех меток
	common := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(labels[0])) {
		common[word] = true
	}
	for _, label := range labels[1:] {
		words := make(map[string]bool)
		for _, word := range strings.Fields(strings.ToLower(label)) {
			words[word] = true
		}
		for word := range common {
			if !words[word] {
				delete(common, word)
			}
		}
	}

	// Слова первой метки в исходном порядке
	var kept []string
	for _, word := range strings.Fields(labels[0]) {
		if common[strings.ToLower(word)] {
			kept = append(kept, word)
		}
	}

	return strings.Join(kept, " ")
}

// shortestLabel возвращает самую короткую непустую метку
// При равной длине побеждает встреченная раньше
func shortestLabel(labels []string) string {
	shortest := ""
	for _, label := range labels {
		if label == "" {
			continue
		}
		if shortest == "" || len(label) < len(shortest) {
			shortest = label
		}
	}
	return shortest
}
