package excel

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportTestItems() []models.LearningItem {
	return []models.LearningItem{
		{
			Language: "EN", Type: models.ItemTypeVocab, Head: "run",
			Tail: "to move fast", Priority: models.PriorityMed,
			Active: true, VideoID: "v1",
		},
		{
			Language: "JP", Type: models.ItemTypePhrase, Head: "遠慮なく",
			Tail: "without hesitation", Priority: models.PriorityHigh,
			Active: false, VideoID: "v1",
		},
	}
}

func TestExportCSV_ColumnOrder(t *testing.T) {
	data, err := ExportCSV(exportTestItems())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"EN", "vocab", "run", "to move fast", "", "", "med", "TRUE", "v1"}, records[1])
	assert.Equal(t, "FALSE", records[2][7])
}

func TestExportExcel_RoundTrip(t *testing.T) {
	data, err := ExportExcel(exportTestItems())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "run", rows[1][2])
	assert.Equal(t, "遠慮なく", rows[2][2])
}
