// Package pdf implementa la hoja de asignaciones de un evento en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del evento   │  Fecha + hora + estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Unidad | Asignado | Devuelto | Pendiente  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del evento + generado por/cuándo       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appdto "github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var statusLabels = map[string]string{
	"planned":     "Planificado",
	"in-progress": "En curso",
	"completed":   "Completado",
	"cancelled":   "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.AllocationSheetGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.AllocationSheetGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador. appName aparece como autor del documento.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateAllocationSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateAllocationSheet(_ context.Context, sheet usecase.AllocationSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de asignaciones: "+sheet.Event.Name, true).
		WithAuthor(nonEmpty(g.appName, "inventario-eventos"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet.Event))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(sheet.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos asignados", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(sheet) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sheet))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del evento (izq) y fecha, hora y estado (der).
func headerRow(event appdto.EventResponse) core.Row {
	when := event.Date
	if event.Time != nil {
		when += " " + *event.Time
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE ASIGNACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(event.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+when, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[event.Status], event.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8, Color: colorPrimary,
			}),
			text.New("Creado por: "+nonEmpty(event.CreatorName, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Unidad", 2, align.Center),
		h("Asignado", 2, align.Right),
		h("Devuelto", 2, align.Right),
		h("Pendiente", 2, align.Right),
	)
}

// tableDetailRows: una fila por asignación; lo pendiente va en rojo.
func tableDetailRows(sheet usecase.AllocationSheet) []core.Row {
	result := make([]core.Row, 0, len(sheet.Lines))
	for _, l := range sheet.Lines {
		pending := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if l.Outstanding > 0 {
			pending.Color = colorAlert
			pending.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(nonEmpty(l.ProductName, l.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.AllocatedQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.ReturnedQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.Outstanding), pending)),
		))
	}
	return result
}

func totalsRow(sheet usecase.AllocationSheet) core.Row {
	allocated, returned, outstanding := sheet.Totals()
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Right: 1, Color: colorPrimary})
	}
	return row.New(8).Add(
		col.New(6).Add(bold(fmt.Sprintf("TOTAL (%d líneas)", len(sheet.Lines)), align.Left)),
		col.New(2).Add(bold(strconv.Itoa(allocated), align.Right)),
		col.New(2).Add(bold(strconv.Itoa(returned), align.Right)),
		col.New(2).Add(bold(strconv.Itoa(outstanding), align.Right)),
	)
}

// footerRow: QR con el id del evento + quién y cuándo generó la hoja.
func footerRow(sheet usecase.AllocationSheet) core.Row {
	generated := "Generado el " + sheet.GeneratedAt.Format("02/01/2006 15:04")
	if sheet.GeneratedBy != "" {
		generated += " por " + sheet.GeneratedBy
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(sheet.Event.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Evento "+sheet.Event.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New(generated, props.Text{Size: 8, Top: 12, Left: 3}),
			text.New("Firma de entrega: ____________________    Firma de devolución: ____________________", props.Text{
				Size: 8, Top: 26, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
