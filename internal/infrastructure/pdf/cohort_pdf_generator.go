// Package pdf genera la versión imprimible de los reportes de cobranza
// (deudores, pagados, pendientes, historial) con Maroto v2.
//
// Layout:
//
//	┌──────────────────────────────────────────────┐
//	│  Empresa                   │ Título + fecha  │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: encabezados + una fila por registro  │
//	│  ──────────────────────────────────────────  │
//	│  Total de registros                          │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Cobranza-api/internal/application/reports"
)

const gridSize = 12

var (
	colorPrimary = &props.Color{Red: 111, Green: 78, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 245, Green: 240, Blue: 235}
)

var _ reports.PDFRenderer = (*CohortPDFGenerator)(nil)

// CohortPDFGenerator implementa reports.PDFRenderer.
type CohortPDFGenerator struct {
	company string
	now     func() time.Time
}

// NewCohortPDFGenerator construye el generador; company aparece en el encabezado.
func NewCohortPDFGenerator(company string) *CohortPDFGenerator {
	return &CohortPDFGenerator{company: company, now: time.Now}
}

// RenderTable genera un PDF A4 (horizontal con más de seis columnas) con la tabla dada.
func (g *CohortPDFGenerator) RenderTable(title string, headers []string, rows [][]string) ([]byte, error) {
	if len(headers) == 0 || len(headers) > gridSize {
		return nil, fmt.Errorf("pdf: %d columnas no soportadas", len(headers))
	}
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.company, true)
	if len(headers) > 6 {
		builder = builder.WithOrientation(orientation.Horizontal)
	}

	m := maroto.New(builder.Build())
	widths := columnWidths(len(headers))

	m.AddRows(g.headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(headers, widths))
	for i, r := range rows {
		m.AddRows(tableRow(r, widths, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de registros: %d", len(rows)), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow empresa (izq) y título + fecha de generación (der).
func (g *CohortPDFGenerator) headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Cobranza", props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1.5, Left: 1,
		}))
	}
	return row.New(7).Add(cols...)
}

func tableRow(values []string, widths []int, striped bool) core.Row {
	cols := make([]core.Col, len(widths))
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols[i] = col.New(widths[i]).Add(text.New(v, props.Text{Size: 7.5, Top: 1, Left: 1}))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// columnWidths reparte las 12 unidades de la grilla; el sobrante va a las primeras columnas.
func columnWidths(n int) []int {
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
