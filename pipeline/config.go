package pipeline

import (
	"errors"
	"fmt"

	"catalogdq/catalog"
	"catalogdq/matching"
)

// Ошибки конфигурации пайплайна
var (
	// ErrNoInputPath не указан входной файл
	ErrNoInputPath = errors.New("no input file path specified")
)

// Config конфигурация одного запуска пайплайна над одним источником
type Config struct {
	// Источник и входной файл
	Source    catalog.Source `json:"source"`
	InputPath string         `json:"input_path"`

	// Сравнение меток
	Algorithms []matching.Algorithm `json:"algorithms"`
	Threshold  float64              `json:"threshold"`
	Workers    int                  `json:"workers"`

	// Отсутствие прошедших порог пар: остановиться или продолжить
	// с кластерами-одиночками (референсный драйвер останавливался)
	FailOnNoMatches bool `json:"fail_on_no_matches"`

	// Запасной вариант канонической метки при пустом пересечении слов
	FallbackShortest bool `json:"fallback_shortest"`

	// Префикс идентификаторов кластеров, различает источники
	// при объединении результатов в один экспорт
	ClusterIDPrefix string `json:"cluster_id_prefix"`
}

// NewDefaultConfig создает конфигурацию с референсным набором алгоритмов
// и порогом источника
func NewDefaultConfig(source catalog.Source, inputPath string) *Config {
	config := &Config{
		Source:    source,
		InputPath: inputPath,
		Algorithms: []matching.Algorithm{
			matching.AlgorithmJaccard,
			matching.AlgorithmDamerauLevenshtein,
			matching.AlgorithmJaroWinkler,
		},
		FallbackShortest: true,
	}

	// Референсные пороги: CLEAR содержит более однородные метки
	switch source {
	case catalog.SourceCLEAR:
		config.Threshold = 0.96
		config.ClusterIDPrefix = "clear_"
	default:
		config.Threshold = 0.93
		config.ClusterIDPrefix = "ccap_"
	}

	return config
}

// Validate проверяет конфигурацию до начала O(n²) вычислений:
// ошибки конфигурации дешево найти здесь и дорого - в середине запуска
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInputPath
	}
	if c.Source != catalog.SourceCLEAR && c.Source != catalog.SourceCCAP {
		return fmt.Errorf("unknown catalog source: %s", c.Source)
	}
	if _, err := matching.NewScorer(c.Algorithms); err != nil {
		return err
	}
	if c.Threshold < 0.0 || c.Threshold > 1.0 {
		return matching.ErrInvalidThreshold
	}
	return nil
}
