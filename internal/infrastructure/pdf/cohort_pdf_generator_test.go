package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnWidths_SumanDoce(t *testing.T) {
	for n := 1; n <= gridSize; n++ {
		sum := 0
		for _, w := range columnWidths(n) {
			sum += w
		}
		assert.Equal(t, gridSize, sum, "n=%d", n)
	}
	assert.Equal(t, []int{2, 2, 2, 2, 2, 1, 1}, columnWidths(7))
}

func TestRenderTable_GeneraPDF(t *testing.T) {
	g := NewCohortPDFGenerator("Café del Caribe")
	data, err := g.RenderTable("Deudores",
		[]string{"Cliente", "Mes", "Folio", "Observaciones"},
		[][]string{
			{"Cafetería Sol", "2024-05", "F-1", "N/A"},
			{"Hotel Maya", "2024-04", "N/A", "llamar lunes"},
		})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderTable_ColumnasInvalidas(t *testing.T) {
	_, err := NewCohortPDFGenerator("x").RenderTable("t", nil, nil)
	assert.Error(t, err)
}
