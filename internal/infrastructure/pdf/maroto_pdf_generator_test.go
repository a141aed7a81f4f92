package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/pdf"
)

func TestGenerateAllocationSheet_ProducePDF(t *testing.T) {
	hour := "19:00"
	sheet := usecase.AllocationSheet{
		Event: dto.EventResponse{
			ID: "0b8f6c1e-1111-2222-3333-444455556666", Name: "Gala benéfica",
			Date: "2026-11-20", Time: &hour, Status: "in-progress", CreatorName: "Ana",
		},
		Lines: []dto.AllocationResponse{
			{ProductName: "Sillas", Unit: "pcs", AllocatedQuantity: 40, ReturnedQuantity: 10, Outstanding: 30},
			{ProductName: "Mesas", Unit: "pcs", AllocatedQuantity: 5, ReturnedQuantity: 5, Outstanding: 0},
		},
		GeneratedAt: time.Date(2026, 11, 21, 9, 30, 0, 0, time.UTC),
		GeneratedBy: "Luis",
	}

	out, err := pdf.NewMarotoPDFGenerator("inventario-eventos").GenerateAllocationSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateAllocationSheet_SinLineas(t *testing.T) {
	sheet := usecase.AllocationSheet{
		Event:       dto.EventResponse{ID: "e1", Name: "Vacío", Date: "2026-01-01", Status: "planned"},
		GeneratedAt: time.Now(),
	}
	out, err := pdf.NewMarotoPDFGenerator("").GenerateAllocationSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
