package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/models"
)

func TestStatementWriter_Write(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "statement.xlsx")

	writer := NewStatementWriter("Calvin Tech Solutions", zap.NewNop())
	data := invoicedoc.StatementData{
		Project:     &models.Project{Name: "Inventory Portal"},
		PeriodStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Invoices: []*models.Invoice{
			{InvoiceNumber: "INV-1", TotalAmount: 5000, Status: models.InvoiceStatusPaid,
				CreatedAt: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)},
			{InvoiceNumber: "INV-2", TotalAmount: 2500, Status: models.InvoiceStatusSent,
				CreatedAt: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
		},
		TotalRevenue:  7500,
		ContractCount: 1,
	}

	require.NoError(t, writer.Write(data, outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	company, err := f.GetCellValue("Statement", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Calvin Tech Solutions", company)

	firstInvoice, err := f.GetCellValue("Statement", "A7")
	require.NoError(t, err)
	assert.Equal(t, "INV-1", firstInvoice)

	revenue, err := f.GetCellValue("Statement", "B10")
	require.NoError(t, err)
	assert.Equal(t, "7500", revenue)
}
