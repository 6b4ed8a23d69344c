package pipeline

import (
	"time"

	"catalogdq/catalog"
)

// RunStats статистика одного запуска пайплайна
type RunStats struct {
	Source          catalog.Source `json:"source"`
	TotalRecords    int            `json:"total_records"`
	RejectedRecords int            `json:"rejected_records"`
	DistinctLabels  int            `json:"distinct_labels"`
	PairsEvaluated  int            `json:"pairs_evaluated"`
	QualifyingPairs int            `json:"qualifying_pairs"`
	Clusters        int            `json:"clusters"`
	Elapsed         time.Duration  `json:"elapsed"`
}

// Result результат запуска пайплайна над одним источником
type Result struct {
	// Все записи источника, включая отклоненные, в порядке ключей уникальности
	Records []*catalog.Record `json:"records"`
	Stats   RunStats          `json:"stats"`
}
