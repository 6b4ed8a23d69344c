package matching

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func newTestMatcher(t *testing.T, algs []Algorithm, threshold float64) *Matcher {
	t.Helper()
	scorer, err := NewScorer(algs)
	if err != nil {
		t.Fatal(err)
	}
	matcher, err := NewMatcher(scorer, threshold)
	if err != nil {
		t.Fatal(err)
	}
	return matcher
}

func TestNewMatcher_ThresholdValidation(t *testing.T) {
	scorer, err := NewScorer([]Algorithm{AlgorithmLevenshtein})
	if err != nil {
		t.Fatal(err)
	}

	for _, threshold := range []float64{-0.1, 1.5} {
		if _, err := NewMatcher(scorer, threshold); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("Expected ErrInvalidThreshold for threshold %f, got %v", threshold, err)
		}
	}

	// Граничные значения допустимы
	for _, threshold := range []float64{0.0, 1.0} {
		if _, err := NewMatcher(scorer, threshold); err != nil {
			t.Errorf("Unexpected error for threshold %f: %v", threshold, err)
		}
	}
}

func TestMatcher_Match_EndToEnd(t *testing.T) {
	// Сценарий из референсного поведения: порог Левенштейна 0.9
	matcher := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.9)

	labels := []string{"collecte om 10l", "collecte om 10 l", "transport benne"}
	pairs, err := matcher.Match(context.Background(), labels)
	if err != nil {
		t.Fatal(err)
	}

	if len(pairs) != 1 {
		t.Fatalf("Expected exactly 1 qualifying pair, got %d: %v", len(pairs), pairs)
	}
	pair := pairs[0]
	if pair.Label1 != "collecte om 10l" || pair.Label2 != "collecte om 10 l" {
		t.Errorf("Unexpected qualifying pair: %+v", pair)
	}
	if pair.Score < 0.9 {
		t.Errorf("Qualifying pair score below threshold: %f", pair.Score)
	}
}

func TestMatcher_Match_NoQualifyingPairs(t *testing.T) {
	matcher := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.9)

	pairs, err := matcher.Match(context.Background(), []string{"aaaa", "zzzz"})
	if !errors.Is(err, ErrNoQualifyingPairs) {
		t.Fatalf("Expected ErrNoQualifyingPairs, got %v (pairs: %v)", err, pairs)
	}

	// Менее двух непустых меток - тоже отсутствие пар
	if _, err := matcher.Match(context.Background(), []string{"", "seule"}); !errors.Is(err, ErrNoQualifyingPairs) {
		t.Errorf("Expected ErrNoQualifyingPairs for a single non-empty label, got %v", err)
	}
}

func TestMatcher_Match_EmptyLabelsExcluded(t *testing.T) {
	matcher := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.0)

	// Порог 0.0 пропускает все пары непустых меток,
	// но пустая метка не должна появиться ни в одной паре
	pairs, err := matcher.Match(context.Background(), []string{"", "rotation", "collecte"})
	if err != nil {
		t.Fatal(err)
	}
	for _, pair := range pairs {
		if pair.Label1 == "" || pair.Label2 == "" {
			t.Errorf("Empty label appeared in qualifying pair: %+v", pair)
		}
	}
	if len(pairs) != 1 {
		t.Errorf("Expected 1 pair among 2 non-empty labels, got %d", len(pairs))
	}
}

func TestMatcher_Match_ThresholdMonotonicity(t *testing.T) {
	labels := []string{
		"collecte om 10l",
		"collecte om 10 l",
		"collecte om 20l",
		"rotation benne",
		"rotation bennes",
	}

	low := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.5)
	high := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.9)

	lowPairs, err := low.Match(context.Background(), labels)
	if err != nil {
		t.Fatal(err)
	}
	highPairs, err := high.Match(context.Background(), labels)
	if err != nil {
		t.Fatal(err)
	}

	if len(highPairs) > len(lowPairs) {
		t.Fatalf("Raising the threshold added pairs: %d at 0.5 vs %d at 0.9", len(lowPairs), len(highPairs))
	}

	// Каждая пара при высоком пороге присутствует и при низком
	lowSet := make(map[string]bool, len(lowPairs))
	for _, pair := range lowPairs {
		lowSet[pair.Label1+"|"+pair.Label2] = true
	}
	for _, pair := range highPairs {
		if !lowSet[pair.Label1+"|"+pair.Label2] {
			t.Errorf("Pair %+v qualifies at 0.9 but not at 0.5", pair)
		}
	}
}

func TestMatcher_Match_DeterministicAcrossWorkers(t *testing.T) {
	labels := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		labels = append(labels, fmt.Sprintf("rotation benne %d m3", i))
	}

	var reference []LabelPair
	for _, workers := range []int{1, 2, 3, 8} {
		matcher := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein, AlgorithmJaccard}, 0.8)
		matcher.SetWorkers(workers)

		pairs, err := matcher.Match(context.Background(), labels)
		if err != nil {
			t.Fatal(err)
		}
		if reference == nil {
			reference = pairs
			continue
		}
		if !reflect.DeepEqual(reference, pairs) {
			t.Errorf("Result differs with %d workers: %d pairs vs %d pairs", workers, len(pairs), len(reference))
		}
	}
}

func TestMatcher_Match_ContextCancellation(t *testing.T) {
	matcher := newTestMatcher(t, []Algorithm{AlgorithmLevenshtein}, 0.9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := matcher.Match(ctx, []string{"un", "deux", "trois"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// Бенчмарк для критичного по производительности пути
func BenchmarkMatcher_Match(b *testing.B) {
	scorer, err := NewScorer([]Algorithm{AlgorithmJaccard, AlgorithmDamerauLevenshtein, AlgorithmJaroWinkler})
	if err != nil {
		b.Fatal(err)
	}
	matcher, err := NewMatcher(scorer, 0.93)
	if err != nil {
		b.Fatal(err)
	}

	labels := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		labels = append(labels, fmt.Sprintf("collecte dechets verts %d m3 zone %d", i%17, i%5))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = matcher.Match(context.Background(), labels)
	}
}
