package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrid() Grid {
	return Grid{
		Headers: []string{"Name", "Amount", "Status"},
		Rows: [][]string{
			{"Tree plantation", "50000", "Completed"},
			{"Blood donation", "12000"},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rendered, err := NewCSVExporter().Render(sampleGrid())
	require.NoError(t, err)

	grid, err := ParseCSV(rendered)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Amount", "Status"}, grid.Headers)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, []string{"Tree plantation", "50000", "Completed"}, grid.Rows[0])
	assert.Equal(t, []string{"Blood donation", "12000", ""}, grid.Rows[1], "short rows are padded")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Grid{})
	assert.Error(t, err)
}

func TestParseCSVShortRowsPadded(t *testing.T) {
	grid, err := ParseCSV([]byte("a,b,c\n1\n"))
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, []string{"1", "", ""}, grid.Rows[0])
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(nil)
	assert.Error(t, err)
}

func TestXLSXRoundTrip(t *testing.T) {
	rendered, err := NewXLSXExporter().Render(sampleGrid())
	require.NoError(t, err)

	grid, err := ParseXLSX(rendered)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Amount", "Status"}, grid.Headers)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "Tree plantation", grid.Rows[0][0])
	assert.Equal(t, "", grid.Rows[1][2])
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseXLSX([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleGrid(), "Schedule for 2025-03-14")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Grid{}, "empty")
	assert.Error(t, err)
}
