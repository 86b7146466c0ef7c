package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

func sampleSession(n int) *entity.AuditSession {
	items := make([]entity.InventoryItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.InventoryItem{
			ID: fmt.Sprintf("SKU-%03d", i), SKU: fmt.Sprintf("SKU-%03d", i),
			Description:    "Producto de prueba",
			TheoreticalQty: 10,
			PhysicalQty:    10 + (i%3 - 1),
			Position:       i,
		})
	}
	return &entity.AuditSession{
		ID:          "s-1",
		StoreName:   "Tienda Central",
		AuditorName: "María Pérez",
		Date:        time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		Status:      entity.AuditStatusCompleted,
		Items:       items,
	}
}

func TestGenerateReportPDF(t *testing.T) {
	s := sampleSession(5)
	out, err := NewMarotoReportGenerator().GenerateReportPDF(context.Background(), s, auditdomain.Summarize(s.Items))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReportPDF_VariasPaginas(t *testing.T) {
	s := sampleSession(200)
	s.Observations = "Conteo nocturno"
	out, err := NewMarotoReportGenerator().GenerateReportPDF(context.Background(), s, auditdomain.Summarize(s.Items))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReportPDF_SesionNil(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateReportPDF(context.Background(), nil, auditdomain.Summary{})
	assert.Error(t, err)
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "25.000", formatThousands(25000))
	assert.Equal(t, "-1.000.000", formatThousands(-1000000))
	assert.Equal(t, "+1.500", signed(1500))
	assert.Equal(t, "-3", signed(-3))
}

func TestDiffColor(t *testing.T) {
	assert.Equal(t, colorRed, diffColor(-1))
	assert.Equal(t, colorGreen, diffColor(2))
	assert.Nil(t, diffColor(0))
}
