package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/polybot/internal/database"
	"github.com/example/polybot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the Excel or CSV file
	UserID     int64  // Owner of the imported items
	VideoID    string // Video the items are attached to (may be empty)
	Language   string // Fallback language when the row has none
	SheetName  string // Name of the sheet to import
	SkipHeader bool   // Skip the header row
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
// Column order matches the CSV export: Language, Type, Head, Tail,
// Example, Usage, Priority.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:  "Sheet1",
		SkipHeader: true,
		StartRow:   2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportItems imports learning items from an Excel or CSV file
func ImportItems(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports learning items from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	itemRepo := database.NewItemRepository()

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, itemRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports learning items from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow lazy quotes for custom CSV format

	itemRepo := database.NewItemRepository()

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, itemRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow turns one row into a learning item
func processRow(row []string, config ImportConfig, itemRepo *database.ItemRepository, result *ImportResult) error {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	language := cell(0)
	itemType := strings.ToLower(cell(1))
	head := cell(2)
	tail := cell(3)
	example := cell(4)
	usage := cell(5)
	priority := strings.ToLower(cell(6))

	if head == "" || tail == "" {
		result.Skipped++
		return nil
	}

	if language == "" {
		language = config.Language
	}
	if language == "" {
		result.Skipped++
		return fmt.Errorf("row has no language and no fallback configured")
	}

	switch models.ItemType(itemType) {
	case models.ItemTypeGrammar, models.ItemTypeVocab, models.ItemTypePhrase, models.ItemTypeMistake:
	default:
		itemType = string(models.ItemTypeVocab)
	}

	switch models.Priority(priority) {
	case models.PriorityLow, models.PriorityMed, models.PriorityHigh:
	default:
		priority = string(models.PriorityMed)
	}

	item := &models.LearningItem{
		VideoID:  config.VideoID,
		UserID:   config.UserID,
		Language: strings.ToUpper(language),
		Type:     models.ItemType(itemType),
		Head:     head,
		Tail:     tail,
		Example:  example,
		Usage:    usage,
		Priority: models.Priority(priority),
		Active:   true,
	}

	if err := itemRepo.Create(item); err != nil {
		return err
	}
	result.Created++
	return nil
}
