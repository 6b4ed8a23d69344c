package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportFormat формат экспорта
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
	FormatJSON  ExportFormat = "json"
)

// analyzedColumns колонки, для которых экспортируются показатели качества
var analyzedColumns = []string{"LIBELLE COMMERCIAL", "label"}

// Exporter экспортер аннотированных записей каталога
type Exporter struct{}

// NewExporter создает новый экспортер
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export записывает аннотированные записи в файл указанного формата
func (e *Exporter) Export(records []*Record, filename string, format ExportFormat) error {
	switch format {
	case FormatExcel:
		return e.exportToExcel(records, filename)
	case FormatCSV:
		return e.exportToCSV(records, filename)
	case FormatJSON:
		return e.exportToJSON(records, filename)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// exportHeader возвращает заголовок табличного экспорта
func exportHeader() []string {
	header := []string{
		"SOURCE",
		"CODE PRESTATION",
		"Modélisation",
		"LIBELLE INTERNE",
		"LIBELLE COMMERCIAL",
		"Marge Brute en %",
		"label",
		"labelpro",
		"Raison Rejet",
		"_unicity_key",
		"_cluster_id",
		"_cluster_size",
		"final_label",
	}
	for _, column := range analyzedColumns {
		header = append(header,
			"_"+column+"_completeness",
			"_"+column+"_uniqueness",
			"_"+column+"_pattern",
			"_"+column+"_len",
		)
	}
	return header
}

// exportRow превращает запись в строку табличного экспорта
func exportRow(record *Record) []string {
	row := []string{
		string(record.Source),
		record.Code,
		record.Modelisation,
		record.LabelInternal,
		record.LabelCommercial,
		record.Margin,
		record.Label,
		record.LabelDisplay,
		record.RejectReason,
		strconv.Itoa(record.UnicityKey),
		record.ClusterID,
		strconv.Itoa(record.ClusterSize),
		record.FinalLabel,
	}
	for _, column := range analyzedColumns {
		quality := record.Quality[column]
		row = append(row,
			quality.Completeness,
			quality.Uniqueness,
			quality.Pattern,
			strconv.Itoa(quality.Length),
		)
	}
	return row
}

// exportToExcel экспортирует записи в xlsx
func (e *Exporter) exportToExcel(records []*Record, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	writeRow := func(rowNum int, values []string) error {
		cells := make([]interface{}, len(values))
		for i, value := range values {
			cells[i] = value
		}
		cellName, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cellName, &cells)
	}

	if err := writeRow(1, exportHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range records {
		if err := writeRow(i+2, exportRow(record)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// exportToCSV экспортирует записи в CSV
func (e *Exporter) exportToCSV(records []*Record, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(exportHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(exportRow(record)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", record.UnicityKey, err)
		}
	}

	return nil
}

// exportToJSON экспортирует записи в JSON с метаданными запуска
func (e *Exporter) exportToJSON(records []*Record, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"run_id":      uuid.New().String(),
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(records),
		"items":       records,
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
