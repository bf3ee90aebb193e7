package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/example/polybot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Export column order, compatible with Anki imports and with the
// importer's expected layout
var exportHeaders = []string{"Language", "Type", "Head", "Tail", "Example", "Usage", "Priority", "Active", "VideoID"}

// ExportCSV renders learning items as a CSV document
func ExportCSV(items []models.LearningItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, item := range items {
		record := []string{
			item.Language,
			string(item.Type),
			item.Head,
			item.Tail,
			item.Example,
			item.Usage,
			string(item.Priority),
			boolLabel(item.Active),
			item.VideoID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %v", err)
	}
	return buf.Bytes(), nil
}

// ExportExcel renders learning items as an Excel workbook
func ExportExcel(items []models.LearningItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %v", err)
		}
	}

	for rowIdx, item := range items {
		values := []interface{}{
			item.Language,
			string(item.Type),
			item.Head,
			item.Tail,
			item.Example,
			item.Usage,
			string(item.Priority),
			boolLabel(item.Active),
			item.VideoID,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %v", err)
	}
	return buf.Bytes(), nil
}

func boolLabel(value bool) string {
	if value {
		return "TRUE"
	}
	return "FALSE"
}
