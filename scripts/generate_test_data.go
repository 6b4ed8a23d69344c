package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

// serviceBases базовые названия услуг, из которых собираются зашумленные метки
var serviceBases = []string{
	"Rotation Benne %dm3",
	"Collecte OM %dl",
	"Collecte carton",
	"Collecte dechets verts",
	"Location benne %dm3",
	"Traitement DIB",
	"Mise a disposition caisson K%d",
	"Transport plateforme",
	"Collecte verre %d litres",
	"Nettoyage haute pression",
}

func main() {
	var (
		outDir = flag.String("out", "./data", "Output directory")
		count  = flag.Int("count", 200, "Number of rows per source")
		seed   = flag.Int64("seed", 0, "Random seed")
	)
	flag.Parse()

	gofakeit.Seed(*seed)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	labels := generateLabels(*count)

	ccapPath := filepath.Join(*outDir, "ccap_test.xlsx")
	if err := writeCCAP(ccapPath, labels); err != nil {
		log.Fatalf("Failed to write CCAP file: %v", err)
	}
	fmt.Printf("Generated %d CCAP rows in %s\n", len(labels), ccapPath)

	clearPath := filepath.Join(*outDir, "clear_test.xlsx")
	if err := writeCLEAR(clearPath, labels); err != nil {
		log.Fatalf("Failed to write CLEAR file: %v", err)
	}
	fmt.Printf("Generated %d CLEAR rows in %s\n", len(labels), clearPath)
}

// generateLabels собирает метки услуг с реалистичным шумом:
// дубликаты, разный регистр, лишние пробелы, разделенные цифры
func generateLabels(count int) []string {
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		base := gofakeit.RandomString(serviceBases)
		label := base
		if strings.Contains(base, "%d") {
			label = fmt.Sprintf(base, gofakeit.Number(5, 40))
		}

		switch gofakeit.Number(0, 5) {
		case 0:
			label = strings.ToUpper(label)
		case 1:
			label = strings.ToLower(label)
		case 2:
			label = strings.ReplaceAll(label, "m3", " m3")
		case 3:
			label = label + "  "
		case 4:
			label = strings.ReplaceAll(label, " ", "  ")
		}

		labels = append(labels, label)
	}
	return labels
}

// writeCCAP записывает файл в формате экспорта CCAP
func writeCCAP(path string, labels []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Export 110723 - National"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Export national des prestations")
	header := []interface{}{"CODE PRESTATION", "LIBELLE INTERNE", "LIBELLE COMMERCIAL", "Modélisation", "Marge Brute en %"}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, label := range labels {
		row := []interface{}{
			fmt.Sprintf("P%05d", i),
			strings.ToUpper(label),
			label,
			gofakeit.RandomString([]string{"BENNE", "CAISSON", "COLLECTE", "TRANSPORT"}),
			fmt.Sprintf("%d", gofakeit.Number(5, 45)),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", 4+i), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return f.SaveAs(path)
}

// writeCLEAR записывает файл в формате выгрузки CLEAR
// Часть строк помечается как выведенные из употребления
func writeCLEAR(path string, labels []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "services et RedMaj"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Extraction des services")
	header := []interface{}{"Activité", "Code Service", "Libellé du service", "Libellé facture du service"}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, label := range labels {
		if i%20 == 0 {
			label = "NE PLUS UTILISER " + label
		} else if i%35 == 0 {
			label = "dryrun " + label
		}
		row := []interface{}{
			gofakeit.RandomString([]string{"Collecte", "Traitement", "Location"}),
			fmt.Sprintf("S%05d", i),
			strings.ToUpper(label),
			label,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", 3+i), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return f.SaveAs(path)
}
