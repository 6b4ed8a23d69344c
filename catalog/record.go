package catalog

// Source источник каталога услуг
type Source string

const (
	// SourceCLEAR референтный каталог услуг CLEAR
	SourceCLEAR Source = "CLEAR"
	// SourceCCAP национальный каталог предприятий CCAP
	SourceCCAP Source = "CCAP"
)

// ColumnQuality показатели качества данных одной колонки записи
type ColumnQuality struct {
	Completeness string `json:"completeness"` // Completed / Missing
	Uniqueness   string `json:"uniqueness"`   // Unique / Duplicates
	Pattern      string `json:"pattern"`      // шаблон значения (x/9)
	Length       int    `json:"len"`          // длина значения в символах
}

// Record одна строка входного каталога с аннотациями пайплайна
// Создается один раз при загрузке и только дополняется метаданными,
// ключ уникальности неизменен в течение запуска
type Record struct {
	UnicityKey int    `json:"unicity_key"`
	Source     Source `json:"source"`

	// Гармонизированные колонки (словарь CCAP)
	Code            string `json:"code"`             // CODE PRESTATION
	Modelisation    string `json:"modelisation"`     // Modélisation
	LabelInternal   string `json:"label_internal"`   // LIBELLE INTERNE
	LabelCommercial string `json:"label_commercial"` // LIBELLE COMMERCIAL
	Margin          string `json:"margin,omitempty"` // Marge Brute en % (только CCAP)

	// Очищенные метки
	Label        string `json:"label"`    // нижний регистр, участвует в сравнении
	LabelDisplay string `json:"labelpro"` // исходный регистр, участвует в канонической метке

	// Причина исключения из кластеризации (пустая для обычных записей)
	RejectReason string `json:"reject_reason,omitempty"`

	// Показатели качества по анализируемым колонкам
	Quality map[string]ColumnQuality `json:"quality,omitempty"`

	// Результат кластеризации
	ClusterID   string `json:"cluster_id"`
	ClusterSize int    `json:"cluster_size"`
	FinalLabel  string `json:"final_label"`
}
