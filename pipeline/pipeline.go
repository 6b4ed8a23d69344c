package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"catalogdq/catalog"
	"catalogdq/dataquality"
	"catalogdq/matching"
)

// Pipeline пакетный пайплайн дедупликации каталога одного источника:
// загрузка -> очистка -> анализ качества -> попарное сравнение ->
// кластеризация -> каноническая метка -> аннотированные записи
type Pipeline struct {
	config  *Config
	loader  *catalog.Loader
	matcher *matching.Matcher
	builder *matching.ClusterBuilder
	labeler *matching.ClusterLabeler
}

// New создает пайплайн
// Конфигурация валидируется здесь, до загрузки данных и попарных вычислений
func New(config *Config) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	scorer, err := matching.NewScorer(config.Algorithms)
	if err != nil {
		return nil, err
	}
	matcher, err := matching.NewMatcher(scorer, config.Threshold)
	if err != nil {
		return nil, err
	}
	if config.Workers > 0 {
		matcher.SetWorkers(config.Workers)
	}

	return &Pipeline{
		config:  config,
		loader:  catalog.NewLoader(),
		matcher: matcher,
		builder: matching.NewClusterBuilder(),
		labeler: matching.NewClusterLabeler(dataquality.PostprocessLabel, config.FallbackShortest),
	}, nil
}

// Run выполняет пайплайн целиком
// Отсутствие прошедших порог пар не является сбоем, если
// FailOnNoMatches выключен: все записи становятся кластерами-одиночками
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	records, err := p.loader.Load(p.config.InputPath, p.config.Source)
	if err != nil {
		return nil, err
	}

	kept, rejected := p.cleanse(records)
	p.annotateQuality(kept)

	labels := distinctLabels(kept)

	pairs, err := p.matcher.Match(ctx, labels)
	if err != nil {
		if !errors.Is(err, matching.ErrNoQualifyingPairs) {
			return nil, err
		}
		if p.config.FailOnNoMatches {
			return nil, fmt.Errorf("source %s: %w", p.config.Source, err)
		}
		pairs = nil
	}

	members := make([]matching.ClusterMember, len(kept))
	for i, record := range kept {
		members[i] = matching.ClusterMember{Key: record.UnicityKey, Label: record.Label}
	}

	assignments := p.builder.Build(members, pairs)
	clusterCount := p.applyAssignments(kept, rejected, assignments)

	p.assignCanonicalLabels(kept)

	// Косметическая постобработка отображаемых меток
	for _, record := range kept {
		record.LabelDisplay = dataquality.PostprocessLabel(record.LabelDisplay)
	}

	all := make([]*catalog.Record, 0, len(kept)+len(rejected))
	all = append(all, kept...)
	all = append(all, rejected...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].UnicityKey < all[j].UnicityKey
	})

	n := len(labels)
	return &Result{
		Records: all,
		Stats: RunStats{
			Source:          p.config.Source,
			TotalRecords:    len(all),
			RejectedRecords: len(rejected),
			DistinctLabels:  n,
			PairsEvaluated:  n * (n - 1) / 2,
			QualifyingPairs: len(pairs),
			Clusters:        clusterCount,
			Elapsed:         time.Since(start),
		},
	}, nil
}

// cleanse очищает метки и отделяет отклоненные записи
// Возвращает обе группы явно, без накопления состояния на пайплайне
func (p *Pipeline) cleanse(records []*catalog.Record) (kept, rejected []*catalog.Record) {
	for _, record := range records {
		var cleansed string
		switch p.config.Source {
		case catalog.SourceCLEAR:
			cleansed = dataquality.CleanseLabelCLEAR(record.LabelCommercial)
		default:
			cleansed = dataquality.CleanseLabelCCAP(record.LabelCommercial)
		}
		record.LabelDisplay = cleansed
		record.Label = strings.ToLower(cleansed)

		// Правила отбраковки действуют только для CLEAR
		if p.config.Source == catalog.SourceCLEAR {
			if reason := rejectReason(record.Label); reason != "" {
				record.RejectReason = reason
				rejected = append(rejected, record)
				continue
			}
		}
		kept = append(kept, record)
	}
	return kept, rejected
}

// rejectReason правила отбраковки меток источника CLEAR
func rejectReason(label string) string {
	switch {
	case strings.Contains(label, "ne plus utiliser"):
		return "NE PLUS UTILISER"
	case strings.Contains(label, "dryrun"):
		return "DRYRUN"
	}
	return ""
}

// annotateQuality вычисляет показатели качества анализируемых колонок
func (p *Pipeline) annotateQuality(records []*catalog.Record) {
	columns := []struct {
		name    string
		valueOf func(*catalog.Record) string
	}{
		{"LIBELLE COMMERCIAL", func(r *catalog.Record) string { return r.LabelCommercial }},
		{"label", func(r *catalog.Record) string { return r.Label }},
	}

	for _, column := range columns {
		values := make([]string, len(records))
		for i, record := range records {
			values[i] = column.valueOf(record)
		}

		completeness := dataquality.Completeness(values)
		uniqueness := dataquality.Uniqueness(values)

		for i, record := range records {
			if record.Quality == nil {
				record.Quality = make(map[string]catalog.ColumnQuality)
			}
			record.Quality[column.name] = catalog.ColumnQuality{
				Completeness: completeness[i],
				Uniqueness:   uniqueness[i],
				Pattern:      dataquality.GeneratePattern(values[i]),
				Length:       len([]rune(values[i])),
			}
		}
	}
}

// distinctLabels возвращает различные непустые метки в порядке появления
func distinctLabels(records []*catalog.Record) []string {
	seen := make(map[string]bool, len(records))
	var labels []string
	for _, record := range records {
		if record.Label == "" || seen[record.Label] {
			continue
		}
		seen[record.Label] = true
		labels = append(labels, record.Label)
	}
	return labels
}

// applyAssignments присваивает идентификаторы и размеры кластеров
// Возвращает общее количество кластеров
func (p *Pipeline) applyAssignments(kept, rejected []*catalog.Record, assignments map[int]matching.ClusterAssignment) int {
	clusters := make(map[string]bool)
	for _, record := range kept {
		assignment := assignments[record.UnicityKey]
		record.ClusterID = p.config.ClusterIDPrefix + assignment.ClusterID
		record.ClusterSize = assignment.Size
		clusters[record.ClusterID] = true
	}

	// Отклоненные записи не участвуют в сравнении, но каждая получает
	// собственный кластер-одиночку: разбиение остается тотальным
	// и downstream-джойны не встречают пустых идентификаторов
	next := len(clusters)
	for _, record := range rejected {
		record.ClusterID = fmt.Sprintf("%scluster_%d", p.config.ClusterIDPrefix, next)
		record.ClusterSize = 1
		clusters[record.ClusterID] = true
		next++
	}

	return len(clusters)
}

// assignCanonicalLabels вычисляет каноническую метку каждого кластера
// Метки участников собираются в порядке ключей уникальности
func (p *Pipeline) assignCanonicalLabels(kept []*catalog.Record) {
	byCluster := make(map[string][]*catalog.Record)
	for _, record := range kept {
		byCluster[record.ClusterID] = append(byCluster[record.ClusterID], record)
	}

	for _, members := range byCluster {
		labels := make([]string, len(members))
		for i, member := range members {
			labels[i] = member.LabelDisplay
		}
		final := p.labeler.Label(labels)
		for _, member := range members {
			member.FinalLabel = final
		}
	}
}
