package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"devhire-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

var shortlistExportHeaders = []string{
	"NAME", "EMAIL", "TITLE", "LOCATION", "AVAILABILITY",
	"COMPLETION (%)", "SKILLS", "NOTES", "SHORTLISTED AT",
}

// shortlistRow flattens one entry. Entries without a profile keep their
// notes and date and leave the profile columns empty.
func shortlistRow(v domain.ShortlistView) []interface{} {
	row := make([]interface{}, len(shortlistExportHeaders))
	for i := range row {
		row[i] = ""
	}
	if p := v.Profile; p != nil {
		if p.User != nil {
			row[0] = p.User.Name
			row[1] = p.User.Email
		}
		row[2] = p.Title
		row[3] = p.Location
		row[4] = p.Availability
		row[5] = p.ProfileCompletion
		row[6] = strings.Join(p.Skills, ", ")
	}
	row[7] = v.Notes
	row[8] = v.CreatedAt.UTC().Format(time.RFC3339)
	return row
}

func exportFilename(ext string) string {
	return fmt.Sprintf("shortlist_%s.%s", time.Now().Format("20060102_150405"), ext)
}

func exportShortlistExcel(views []domain.ShortlistView) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Shortlist"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}

	for i, h := range shortlistExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(shortlistExportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, v := range views {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		row := shortlistRow(v)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write shortlist row: %w", err)
		}
	}

	for i := range shortlistExportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), exportFilename(domain.ExportFormatXLSX), nil
}

func exportShortlistCSV(views []domain.ShortlistView) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(shortlistExportHeaders); err != nil {
		return nil, "", err
	}
	for _, v := range views {
		row := shortlistRow(v)
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = fmt.Sprint(val)
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), exportFilename(domain.ExportFormatCSV), nil
}
