package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/config"
	"github.com/calvintech/inhouse-pos/internal/email"
	"github.com/calvintech/inhouse-pos/internal/export"
	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
)

func newInvoiceService(t *testing.T, db *sql.DB) (*InvoiceService, *repository.ProjectRepository) {
	t.Helper()
	logger := zap.NewNop()

	projectRepo := repository.NewProjectRepository(db, logger)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db, logger),
		projectRepo,
		invoicedoc.NewComposer(invoicedoc.Config{CurrencySymbol: "R"}),
		render.NewPDFRenderer(logger),
		email.NewSender(config.EmailConfig{Enabled: false}, logger),
		t.TempDir(),
		logger,
	)
	return svc, projectRepo
}

func TestInvoiceService_CreateComputesTotal(t *testing.T) {
	db := testDB(t)
	svc, projectRepo := newInvoiceService(t, db)
	project := seedProject(t, projectRepo)

	invoice, err := svc.Create(project.ID, &InvoicePayload{
		Items: []models.InvoiceItem{
			{Description: "Design sprint", Quantity: 2, Price: 1500},
			{Description: "Deployment", Quantity: 1, Price: 500},
		},
		PaymentTerms: "Payable within 30 days.",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^INV-\d{8}-\d{4}$`, invoice.InvoiceNumber)
	assert.Equal(t, 3500.0, invoice.TotalAmount)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.NotEmpty(t, invoice.PDFPath)
}

func TestInvoiceService_CreateRequiresItems(t *testing.T) {
	db := testDB(t)
	svc, projectRepo := newInvoiceService(t, db)
	project := seedProject(t, projectRepo)

	_, err := svc.Create(project.ID, &InvoicePayload{})
	var missing *models.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "items", missing.Field)
}

func TestInvoiceService_PaidInvoiceCompletesProject(t *testing.T) {
	db := testDB(t)
	svc, projectRepo := newInvoiceService(t, db)
	project := seedProject(t, projectRepo)

	invoice, err := svc.Create(project.ID, &InvoicePayload{
		Items: []models.InvoiceItem{{Description: "Build", Quantity: 1, Price: 8000}},
	})
	require.NoError(t, err)

	_, err = svc.Update(invoice.ID, &InvoicePayload{
		Items:  invoice.Items,
		Status: models.InvoiceStatusPaid,
	})
	require.NoError(t, err)

	refreshed, err := projectRepo.GetByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", refreshed.Status)
}

func TestStatementService_BuildAndExport(t *testing.T) {
	db := testDB(t)
	logger := zap.NewNop()
	invoiceSvc, projectRepo := newInvoiceService(t, db)
	project := seedProject(t, projectRepo)

	paid, err := invoiceSvc.Create(project.ID, &InvoicePayload{
		Items: []models.InvoiceItem{{Description: "Phase 1", Quantity: 1, Price: 5000}},
	})
	require.NoError(t, err)
	_, err = invoiceSvc.Update(paid.ID, &InvoicePayload{Items: paid.Items, Status: models.InvoiceStatusPaid})
	require.NoError(t, err)

	_, err = invoiceSvc.Create(project.ID, &InvoicePayload{
		Items:  []models.InvoiceItem{{Description: "Phase 2", Quantity: 1, Price: 2500}},
		Status: models.InvoiceStatusSent,
	})
	require.NoError(t, err)

	svc := NewStatementService(
		projectRepo,
		repository.NewContractRepository(db, logger),
		repository.NewInvoiceRepository(db, logger),
		invoicedoc.NewComposer(invoicedoc.Config{CurrencySymbol: "R"}),
		render.NewPDFRenderer(logger),
		export.NewStatementWriter("Calvin Tech Solutions", logger),
		t.TempDir(),
		logger,
	)

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now().Add(24 * time.Hour)

	data, err := svc.Build(project.ID, start, end)
	require.NoError(t, err)
	assert.Len(t, data.Invoices, 2)
	assert.Equal(t, 5000.0, data.TotalRevenue)

	pdf, err := svc.PDF(project.ID, start, end)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")

	path, err := svc.ExportXLSX(project.ID, start, end)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
