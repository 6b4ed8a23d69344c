package matching

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Ошибки попарного сравнения
var (
	// ErrInvalidThreshold порог сходства вне диапазона [0.0, 1.0]
	ErrInvalidThreshold = errors.New("matching threshold must be between 0.0 and 1.0")
	// ErrNoQualifyingPairs ни одна пара меток не достигла порога
	// Это различимый исход, а не сбой: вызывающая сторона решает,
	// продолжать ли с кластерами-одиночками
	ErrNoQualifyingPairs = errors.New("no label pairs reached the matching threshold")
)

// LabelPair неупорядоченная пара различных меток с оценкой сходства
type LabelPair struct {
	Label1 string
	Label2 string
	Score  float64
}

// Matcher выполняет исчерпывающее попарное сравнение меток
// Это доминирующая по стоимости часть пайплайна: O(n²) сравнений,
// каждое O(max(len)) на алгоритм
type Matcher struct {
	scorer    *Scorer
	threshold float64
	workers   int
}

// NewMatcher создает матчер с указанным скорером и порогом сходства
func NewMatcher(scorer *Scorer, threshold float64) (*Matcher, error) {
	if threshold < 0.0 || threshold > 1.0 {
		return nil, ErrInvalidThreshold
	}

	return &Matcher{
		scorer:    scorer,
		threshold: threshold,
		workers:   runtime.NumCPU(),
	}, nil
}

// SetWorkers задает количество воркеров для попарного сравнения
// Количество воркеров не влияет на итоговое множество пар
func (m *Matcher) SetWorkers(n int) {
	if n > 0 {
		m.workers = n
	}
}

// Match перебирает все C(n,2) неупорядоченных пар различных меток
// и возвращает пары с оценкой не ниже порога, отсортированные по меткам
// Пустые метки не участвуют в сравнении
// Если ни одна пара не достигла порога, возвращает ErrNoQualifyingPairs
func (m *Matcher) Match(ctx context.Context, labels []string) ([]LabelPair, error) {
	distinct := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != "" {
			distinct = append(distinct, label)
		}
	}

	n := len(distinct)
	if n < 2 {
		return nil, ErrNoQualifyingPairs
	}

	workers := m.workers
	if workers > n-1 {
		workers = n - 1
	}
	if workers < 1 {
		workers = 1
	}

	// Пространство комбинаций шардируется по первому индексу пары:
	// воркер w обрабатывает строки i с i % workers == w
	// Пары независимы и читают неизменяемый список меток,
	// поэтому общего изменяемого состояния нет
	partials := make([][]LabelPair, workers)
	group, groupCtx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w
		group.Go(func() error {
			var kept []LabelPair
			for i := w; i < n-1; i += workers {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < n; j++ {
					score := m.scorer.Score(distinct[i], distinct[j])
					if score >= m.threshold {
						kept = append(kept, LabelPair{
							Label1: distinct[i],
							Label2: distinct[j],
							Score:  score,
						})
					}
				}
			}
			partials[w] = kept
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var pairs []LabelPair
	for _, partial := range partials {
		pairs = append(pairs, partial...)
	}

	// Результат - множество: сортировка делает порядок независимым
	// от планирования воркеров
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Label1 != pairs[j].Label1 {
			return pairs[i].Label1 < pairs[j].Label1
		}
		return pairs[i].Label2 < pairs[j].Label2
	})

	if len(pairs) == 0 {
		return nil, ErrNoQualifyingPairs
	}

	return pairs, nil
}

// Threshold возвращает настроенный порог сходства
func (m *Matcher) Threshold() float64 {
	return m.threshold
}
