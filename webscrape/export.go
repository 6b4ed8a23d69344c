package webscrape

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// lineupColumns порядок колонок выгрузки состава спикеров
var lineupColumns = []string{
	"name",
	"title",
	"company",
	"url",
	"short_description",
	"location",
	"building",
	"long_description",
	"conference_date",
	"conference_title",
	"conference_note",
	"linkedin_account",
}

// ExportLineup сохраняет состав спикеров в xlsx-файл
func ExportLineup(path string, speakers []Speaker) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(lineupColumns))
	for i, column := range lineupColumns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, speaker := range speakers {
		row := []interface{}{
			speaker.Name,
			speaker.Title,
			speaker.Company,
			speaker.ProfileURL,
			speaker.ShortDescription,
			speaker.Location,
			speaker.Building,
			speaker.LongDescription,
			speaker.ConferenceDate,
			speaker.ConferenceTitle,
			speaker.ConferenceNote,
			speaker.LinkedInAccount,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file %q: %w", path, err)
	}
	return nil
}
