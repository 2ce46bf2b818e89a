package service

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/email"
	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
	"github.com/calvintech/inhouse-pos/internal/schedule"
)

// InvoicePayload is the raw invoice shape accepted from API clients.
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Items         []models.InvoiceItem `json:"items"`
	PaymentTerms  string               `json:"paymentTerms"`
	Status        string               `json:"status"`
}

// InvoiceService orchestrates invoice creation, totals, PDF generation and
// the paid-invoice side effect on project status.
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	projectRepo *repository.ProjectRepository
	composer    *invoicedoc.Composer
	pdf         *render.PDFRenderer
	sender      *email.Sender
	documentDir string
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	projectRepo *repository.ProjectRepository,
	composer *invoicedoc.Composer,
	pdf *render.PDFRenderer,
	sender *email.Sender,
	documentDir string,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		composer:    composer,
		pdf:         pdf,
		sender:      sender,
		documentDir: documentDir,
		logger:      logger,
	}
}

// Create validates the payload, computes the total from line items and
// persists the invoice. The stored total is always derived, never trusted
// from the payload.
func (s *InvoiceService) Create(projectID int64, payload *InvoicePayload) (*models.Invoice, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &NotFoundError{Resource: "project", ID: projectID}
	}

	invoice, err := s.resolvePayload(projectID, payload)
	if err != nil {
		return nil, err
	}

	if invoice.InvoiceNumber == "" {
		number, err := s.invoiceRepo.GenerateInvoiceNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invoice number: %w", err)
		}
		invoice.InvoiceNumber = number
	}

	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("total_amount", invoice.TotalAmount))

	if err := s.generatePDF(invoice, project); err != nil {
		s.logger.Error("Failed to generate invoice PDF",
			zap.Int64("invoice_id", invoice.ID),
			zap.Error(err))
	}

	return invoice, nil
}

// Get returns an invoice by id
func (s *InvoiceService) Get(id int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, &NotFoundError{Resource: "invoice", ID: id}
	}
	return invoice, nil
}

// List returns all invoices
func (s *InvoiceService) List() ([]*models.Invoice, error) {
	return s.invoiceRepo.List()
}

// ListByProject returns all invoices for a project
func (s *InvoiceService) ListByProject(projectID int64) ([]*models.Invoice, error) {
	return s.invoiceRepo.ListByProject(projectID)
}

// Update re-resolves the payload onto an existing invoice. An invoice moving
// into the paid status marks its project completed.
func (s *InvoiceService) Update(id int64, payload *InvoicePayload) (*models.Invoice, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	invoice, err := s.resolvePayload(existing.ProjectID, payload)
	if err != nil {
		return nil, err
	}
	invoice.ID = existing.ID
	invoice.CreatedAt = existing.CreatedAt
	invoice.PDFPath = existing.PDFPath
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = existing.InvoiceNumber
	}

	if _, err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	if invoice.Status == models.InvoiceStatusPaid && existing.Status != models.InvoiceStatusPaid {
		if err := s.projectRepo.UpdateStatus(invoice.ProjectID, "completed"); err != nil {
			s.logger.Error("Failed to mark project completed",
				zap.Int64("project_id", invoice.ProjectID),
				zap.Error(err))
		} else {
			s.logger.Info("Project marked completed after final payment",
				zap.Int64("project_id", invoice.ProjectID),
				zap.String("invoice_number", invoice.InvoiceNumber))
		}
	}

	return invoice, nil
}

// Delete removes the invoice and its generated PDF
func (s *InvoiceService) Delete(id int64) error {
	invoice, err := s.Get(id)
	if err != nil {
		return err
	}

	if invoice.PDFPath != "" {
		if err := os.Remove(invoice.PDFPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove invoice PDF",
				zap.String("pdf_path", invoice.PDFPath),
				zap.Error(err))
		}
	}

	_, err = s.invoiceRepo.Delete(id)
	return err
}

// PDF returns the rendered invoice as PDF bytes
func (s *InvoiceService) PDF(id int64) ([]byte, error) {
	invoice, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.GetByID(invoice.ProjectID)
	if err != nil {
		return nil, err
	}

	sections, err := s.composer.ComposeInvoice(invoice, project)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(sections)
}

// SendDocument emails the invoice PDF to the given recipient, generating
// the PDF first if it is missing.
func (s *InvoiceService) SendDocument(id int64, to string) error {
	invoice, err := s.Get(id)
	if err != nil {
		return err
	}

	if invoice.PDFPath == "" {
		project, err := s.projectRepo.GetByID(invoice.ProjectID)
		if err != nil {
			return err
		}
		if err := s.generatePDF(invoice, project); err != nil {
			return err
		}
	}

	return s.sender.SendInvoiceDocument(to, invoice, invoice.PDFPath)
}

func (s *InvoiceService) resolvePayload(projectID int64, payload *InvoicePayload) (*models.Invoice, error) {
	if len(payload.Items) == 0 {
		return nil, &models.MissingFieldError{Field: "items"}
	}
	for _, item := range payload.Items {
		if item.Quantity < 0 || item.Price < 0 {
			return nil, &schedule.InvalidInputError{Field: "items", Reason: "quantity and price must be non-negative"}
		}
	}

	status := payload.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	switch status {
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid:
	default:
		return nil, &schedule.InvalidInputError{Field: "status", Reason: "unknown status " + status}
	}

	invoice := &models.Invoice{
		ProjectID:     projectID,
		InvoiceNumber: payload.InvoiceNumber,
		Items:         payload.Items,
		PaymentTerms:  payload.PaymentTerms,
		Status:        status,
	}
	invoice.TotalAmount = invoice.ComputeTotal()
	return invoice, nil
}

func (s *InvoiceService) generatePDF(invoice *models.Invoice, project *models.Project) error {
	sections, err := s.composer.ComposeInvoice(invoice, project)
	if err != nil {
		return err
	}

	data, err := s.pdf.Render(sections)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.documentDir, 0o755); err != nil {
		return fmt.Errorf("failed to create document dir: %w", err)
	}

	path := filepath.Join(s.documentDir, fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceNumber))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	invoice.PDFPath = path
	_, err = s.invoiceRepo.Update(invoice)
	return err
}
