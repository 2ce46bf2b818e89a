package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/export"
	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
)

// StatementService aggregates a project's financial activity over a period
// and renders it as a PDF statement or a spreadsheet workbook.
type StatementService struct {
	projectRepo  *repository.ProjectRepository
	contractRepo *repository.ContractRepository
	invoiceRepo  *repository.InvoiceRepository
	composer     *invoicedoc.Composer
	pdf          *render.PDFRenderer
	writer       *export.StatementWriter
	documentDir  string
	logger       *zap.Logger
}

// NewStatementService creates a new statement service
func NewStatementService(
	projectRepo *repository.ProjectRepository,
	contractRepo *repository.ContractRepository,
	invoiceRepo *repository.InvoiceRepository,
	composer *invoicedoc.Composer,
	pdf *render.PDFRenderer,
	writer *export.StatementWriter,
	documentDir string,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		projectRepo:  projectRepo,
		contractRepo: contractRepo,
		invoiceRepo:  invoiceRepo,
		composer:     composer,
		pdf:          pdf,
		writer:       writer,
		documentDir:  documentDir,
		logger:       logger,
	}
}

// Build aggregates the statement data for a project over [start, end].
// Revenue only counts paid invoices; draft and sent invoices are listed but
// not summed.
func (s *StatementService) Build(projectID int64, start, end time.Time) (*invoicedoc.StatementData, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &NotFoundError{Resource: "project", ID: projectID}
	}

	invoices, err := s.invoiceRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contractRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	data := &invoicedoc.StatementData{
		Project:       project,
		PeriodStart:   start,
		PeriodEnd:     end,
		ContractCount: len(contracts),
	}

	for _, inv := range invoices {
		if inv.CreatedAt.Before(start) || inv.CreatedAt.After(end) {
			continue
		}
		data.Invoices = append(data.Invoices, inv)
		if inv.Status == "paid" {
			data.TotalRevenue += inv.TotalAmount
		}
	}

	s.logger.Info("Statement built",
		zap.Int64("project_id", projectID),
		zap.Int("invoices", len(data.Invoices)),
		zap.Float64("total_revenue", data.TotalRevenue))

	return data, nil
}

// PDF renders the statement as PDF bytes
func (s *StatementService) PDF(projectID int64, start, end time.Time) ([]byte, error) {
	data, err := s.Build(projectID, start, end)
	if err != nil {
		return nil, err
	}
	sections, err := s.composer.ComposeStatement(*data)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(sections)
}

// ExportXLSX writes the statement workbook into the document directory and
// returns its path.
func (s *StatementService) ExportXLSX(projectID int64, start, end time.Time) (string, error) {
	data, err := s.Build(projectID, start, end)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.documentDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document dir: %w", err)
	}

	path := filepath.Join(s.documentDir,
		fmt.Sprintf("statement_%d_%s.xlsx", projectID, end.Format("20060102")))
	if err := s.writer.Write(*data, path); err != nil {
		return "", err
	}
	return path, nil
}
