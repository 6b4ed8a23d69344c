package matching

import (
	"errors"
	"fmt"

	"catalogdq/matching/algorithms"
)

// Ошибки конфигурации скоринга
var (
	// ErrNoAlgorithms не указан ни один алгоритм сравнения
	ErrNoAlgorithms = errors.New("no matching algorithms specified")
)

// Algorithm тип алгоритма сравнения строк
type Algorithm string

const (
	// AlgorithmLevenshtein нормализованное расстояние Левенштейна
	AlgorithmLevenshtein Algorithm = "levenshtein"
	// AlgorithmDamerauLevenshtein расстояние Дамерау-Левенштейна (с транспозициями)
	AlgorithmDamerauLevenshtein Algorithm = "damerau_levenshtein"
	// AlgorithmJaccard индекс Жаккара по множествам слов
	AlgorithmJaccard Algorithm = "jaccard"
	// AlgorithmJaroWinkler алгоритм Jaro-Winkler с бонусом за префикс
	AlgorithmJaroWinkler Algorithm = "jaro_winkler"
	// AlgorithmCosine косинусное сходство TF-векторов
	AlgorithmCosine Algorithm = "cosine"
)

// UnknownAlgorithmError ошибка при неизвестном алгоритме
type UnknownAlgorithmError struct {
	Algorithm Algorithm
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown matching algorithm: %s", e.Algorithm)
}

// similarityFunc функция сходства двух строк, значение от 0.0 до 1.0
type similarityFunc func(s1, s2 string) float64

// Scorer вычисляет сходство пары строк как максимум по набору алгоритмов
type Scorer struct {
	names []Algorithm
	funcs []similarityFunc
}

// NewScorer создает скорер для указанного набора алгоритмов
// Набор валидируется один раз здесь, до начала попарных вычислений
func NewScorer(algs []Algorithm) (*Scorer, error) {
	if len(algs) == 0 {
		return nil, ErrNoAlgorithms
	}

	scorer := &Scorer{
		names: make([]Algorithm, 0, len(algs)),
		funcs: make([]similarityFunc, 0, len(algs)),
	}

	for _, alg := range algs {
		var fn similarityFunc

		switch alg {
		case AlgorithmLevenshtein:
			fn = algorithms.NewLevenshtein().Similarity
		case AlgorithmDamerauLevenshtein:
			fn = algorithms.NewDamerauLevenshtein().Similarity
		case AlgorithmJaccard:
			fn = algorithms.NewJaccardIndex().Similarity
		case AlgorithmJaroWinkler:
			fn = algorithms.NewJaroWinkler().Similarity
		case AlgorithmCosine:
			fn = algorithms.NewCosineSimilarity().Similarity
		default:
			return nil, &UnknownAlgorithmError{Algorithm: alg}
		}

		scorer.names = append(scorer.names, alg)
		scorer.funcs = append(scorer.funcs, fn)
	}

	return scorer, nil
}

// Score вычисляет сходство двух строк
// Возвращает максимум по всем настроенным алгоритмам
func (s *Scorer) Score(s1, s2 string) float64 {
	best := 0.0
	for _, fn := range s.funcs {
		if sim := fn(s1, s2); sim > best {
			best = sim
		}
	}
	return best
}

// Algorithms возвращает список настроенных алгоритмов
func (s *Scorer) Algorithms() []Algorithm {
	names := make([]Algorithm, len(s.names))
	copy(names, s.names)
	return names
}
