package catalog

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// loadOptions параметры чтения листа для конкретного источника
type loadOptions struct {
	sheetName string
	skipRows  int
	columns   []string
}

// sourceLoadOptions возвращает параметры чтения входного файла источника
func sourceLoadOptions(source Source) (loadOptions, error) {
	switch source {
	case SourceCLEAR:
		return loadOptions{
			sheetName: "services et RedMaj",
			skipRows:  1,
			columns: []string{
				"Activité",
				"Code Service",
				"Libellé du service",
				"Libellé facture du service",
			},
		}, nil
	case SourceCCAP:
		return loadOptions{
			sheetName: "Export 110723 - National",
			skipRows:  2,
			columns: []string{
				"CODE PRESTATION",
				"LIBELLE INTERNE",
				"LIBELLE COMMERCIAL",
				"Modélisation",
				"Marge Brute en %",
			},
		}, nil
	default:
		return loadOptions{}, fmt.Errorf("unknown catalog source: %s", source)
	}
}

// Loader читает каталог услуг из xlsx-файла источника
// Колонки источника CLEAR переименовываются в словарь CCAP
type Loader struct{}

// NewLoader создает новый загрузчик каталогов
func NewLoader() *Loader {
	return &Loader{}
}

// Load загружает записи каталога из файла
// Каждой записи присваивается ключ уникальности - порядковый номер строки
func (l *Loader) Load(path string, source Source) ([]*Record, error) {
	options, err := sourceLoadOptions(source)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file %q: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(options.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", options.sheetName, err)
	}

	if len(rows) <= options.skipRows+1 {
		return nil, fmt.Errorf("the file %q is empty", path)
	}

	// Строка заголовков идет после пропускаемых строк
	header := rows[options.skipRows]
	columnIndex := make(map[string]int, len(options.columns))
	for i, name := range header {
		columnIndex[name] = i
	}
	for _, name := range options.columns {
		if _, ok := columnIndex[name]; !ok {
			return nil, fmt.Errorf("column %q not found in sheet %q", name, options.sheetName)
		}
	}

	cell := func(row []string, column string) string {
		idx := columnIndex[column]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	records := make([]*Record, 0, len(rows)-options.skipRows-1)
	for i, row := range rows[options.skipRows+1:] {
		record := &Record{
			UnicityKey: i,
			Source:     source,
		}

		switch source {
		case SourceCLEAR:
			// Гармонизация со словарем CCAP
			record.Code = cell(row, "Code Service")
			record.Modelisation = cell(row, "Activité")
			record.LabelInternal = cell(row, "Libellé du service")
			record.LabelCommercial = cell(row, "Libellé facture du service")
		case SourceCCAP:
			record.Code = cell(row, "CODE PRESTATION")
			record.Modelisation = cell(row, "Modélisation")
			record.LabelInternal = cell(row, "LIBELLE INTERNE")
			record.LabelCommercial = cell(row, "LIBELLE COMMERCIAL")
			record.Margin = cell(row, "Marge Brute en %")
		}

		// Пустая коммерческая метка заполняется внутренней
		if record.LabelCommercial == "" {
			record.LabelCommercial = record.LabelInternal
		}

		records = append(records, record)
	}

	return records, nil
}
