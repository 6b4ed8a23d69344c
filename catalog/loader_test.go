package catalog

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeFixture создает xlsx-файл с указанным листом и строками
func writeFixture(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatal(err)
	}
	f.SetActiveSheet(index)

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func writeCCAPFixture(t *testing.T, path string, dataRows [][]interface{}) {
	rows := [][]interface{}{
		{"Kit catalogue national"},
		{"export"},
		{"CODE PRESTATION", "LIBELLE INTERNE", "LIBELLE COMMERCIAL", "Modélisation", "Marge Brute en %"},
	}
	rows = append(rows, dataRows...)
	writeFixture(t, path, "Export 110723 - National", rows)
}

func TestLoader_LoadCCAP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccap.xlsx")
	writeCCAPFixture(t, path, [][]interface{}{
		{"P001", "Collecte OM interne", "Collecte OM 10L", "Collecte", "12"},
		{"P002", "Rotation benne interne", "", "Rotation", "8"},
	})

	records, err := NewLoader().Load(path, SourceCCAP)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.UnicityKey != 0 || first.Source != SourceCCAP {
		t.Errorf("Unexpected identity fields: %+v", first)
	}
	if first.Code != "P001" || first.LabelCommercial != "Collecte OM 10L" {
		t.Errorf("Unexpected harmonized columns: %+v", first)
	}
	if first.Margin != "12" {
		t.Errorf("Expected margin column for CCAP, got %q", first.Margin)
	}

	// Пустая коммерческая метка заполняется внутренней
	second := records[1]
	if second.LabelCommercial != "Rotation benne interne" {
		t.Errorf("Expected commercial label fallback to internal, got %q", second.LabelCommercial)
	}
}

func TestLoader_LoadCLEAR_HarmonizesColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clear.xlsx")
	writeFixture(t, path, "services et RedMaj", [][]interface{}{
		{"référentiel services"},
		{"Activité", "Code Service", "Libellé du service", "Libellé facture du service"},
		{"Collecte", "S100", "Collecte des déchets", "Collecte déchets verts"},
	})

	records, err := NewLoader().Load(path, SourceCLEAR)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.Code != "S100" {
		t.Errorf("Expected Code Service mapped to code, got %q", record.Code)
	}
	if record.Modelisation != "Collecte" {
		t.Errorf("Expected Activité mapped to modelisation, got %q", record.Modelisation)
	}
	if record.LabelInternal != "Collecte des déchets" {
		t.Errorf("Unexpected internal label: %q", record.LabelInternal)
	}
	if record.LabelCommercial != "Collecte déchets verts" {
		t.Errorf("Unexpected commercial label: %q", record.LabelCommercial)
	}
	if record.Source != SourceCLEAR {
		t.Errorf("Unexpected source tag: %q", record.Source)
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	writeCCAPFixture(t, path, nil)

	if _, err := NewLoader().Load(path, SourceCCAP); err == nil {
		t.Error("Expected error for a file without data rows")
	}
}

func TestLoader_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	rows := [][]interface{}{
		{"Kit catalogue national"},
		{"export"},
		{"CODE PRESTATION", "LIBELLE INTERNE"},
		{"P001", "Collecte"},
	}
	writeFixture(t, path, "Export 110723 - National", rows)

	if _, err := NewLoader().Load(path, SourceCCAP); err == nil {
		t.Error("Expected error for missing columns")
	}
}

func TestLoader_UnknownSource(t *testing.T) {
	if _, err := NewLoader().Load("whatever.xlsx", Source("SAP")); err == nil {
		t.Error("Expected error for unknown source")
	}
}
