package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cobranza-api/internal/application/reports"
)

func TestSearch_SinDistinguirMayusculasNiAcentos(t *testing.T) {
	assert.Equal(t, []string{"7", "8"}, ids(reports.Search(sample(), "merida")))
	assert.Equal(t, []string{"5", "6"}, ids(reports.Search(sample(), "HOTEL")))
}

func TestSearch_PorMesEstadoYFechaDePago(t *testing.T) {
	// "2024-02" coincide con el mes del 3 y con la fecha de pago del 8.
	assert.Equal(t, []string{"3", "8"}, ids(reports.Search(sample(), "2024-02")))
	assert.Equal(t, []string{"5"}, ids(reports.Search(sample(), "espera")))
	assert.Equal(t, []string{"4"}, ids(reports.Search(sample(), "2024-04-09")))
}

func TestSearch_PorFolio(t *testing.T) {
	rows := sample()
	rows[1].InvoiceFolio = "FAC-0099"
	assert.Equal(t, []string{"2"}, ids(reports.Search(rows, "fac-0099")))
}

func TestSearch_VacioNoFiltra(t *testing.T) {
	assert.Len(t, reports.Search(sample(), "  "), 8)
}
