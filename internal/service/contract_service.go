package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/contractdoc"
	"github.com/calvintech/inhouse-pos/internal/email"
	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
	"github.com/calvintech/inhouse-pos/internal/schedule"
	"github.com/calvintech/inhouse-pos/internal/signedcopy"
)

// ContractService orchestrates the contract lifecycle: payload resolution,
// payment schedule computation, document composition, PDF generation and
// signed-copy ingestion.
type ContractService struct {
	contractRepo *repository.ContractRepository
	projectRepo  *repository.ProjectRepository
	composer     *contractdoc.Composer
	pdf          *render.PDFRenderer
	verifier     *signedcopy.Verifier
	sender       *email.Sender
	documentDir  string
	uploadDir    string
	logger       *zap.Logger
}

// NewContractService creates a new contract service
func NewContractService(
	contractRepo *repository.ContractRepository,
	projectRepo *repository.ProjectRepository,
	composer *contractdoc.Composer,
	pdf *render.PDFRenderer,
	verifier *signedcopy.Verifier,
	sender *email.Sender,
	documentDir string,
	uploadDir string,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		projectRepo:  projectRepo,
		composer:     composer,
		pdf:          pdf,
		verifier:     verifier,
		sender:       sender,
		documentDir:  documentDir,
		uploadDir:    uploadDir,
		logger:       logger,
	}
}

// Create resolves the payload against a project, computes the payment
// schedule, persists the contract and generates its agreement PDF.
func (s *ContractService) Create(projectID int64, payload *models.ContractPayload) (*models.Contract, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &NotFoundError{Resource: "project", ID: projectID}
	}

	contract, err := s.resolvePayload(projectID, project, payload)
	if err != nil {
		return nil, err
	}

	if contract.ContractNumber == "" {
		number, err := s.contractRepo.GenerateContractNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate contract number: %w", err)
		}
		contract.ContractNumber = number
	}

	if err := s.contractRepo.Create(contract); err != nil {
		return nil, err
	}

	s.logger.Info("Contract created",
		zap.Int64("contract_id", contract.ID),
		zap.String("contract_number", contract.ContractNumber),
		zap.Bool("reconciliation_warning", contract.PaymentSchedule.ReconciliationWarning))

	if err := s.generatePDF(contract); err != nil {
		// The contract row is already persisted; the PDF can be
		// regenerated on demand.
		s.logger.Error("Failed to generate contract PDF",
			zap.Int64("contract_id", contract.ID),
			zap.Error(err))
	}

	return contract, nil
}

// Get returns a contract by id
func (s *ContractService) Get(id int64) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, &NotFoundError{Resource: "contract", ID: id}
	}
	return contract, nil
}

// List returns all contracts
func (s *ContractService) List() ([]*models.Contract, error) {
	return s.contractRepo.List()
}

// ListByProject returns all contracts for a project
func (s *ContractService) ListByProject(projectID int64) ([]*models.Contract, error) {
	return s.contractRepo.ListByProject(projectID)
}

// Update re-resolves the payload onto an existing contract, recomputes the
// schedule and regenerates the PDF. Moving into the approved status triggers
// the client notification email.
func (s *ContractService) Update(id int64, payload *models.ContractPayload) (*models.Contract, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(existing.ProjectID)
	if err != nil {
		return nil, err
	}

	contract, err := s.resolvePayload(existing.ProjectID, project, payload)
	if err != nil {
		return nil, err
	}
	contract.ID = existing.ID
	contract.CreatedAt = existing.CreatedAt
	contract.PDFPath = existing.PDFPath
	if contract.ContractNumber == "" {
		contract.ContractNumber = existing.ContractNumber
	}

	if _, err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	if err := s.generatePDF(contract); err != nil {
		s.logger.Error("Failed to regenerate contract PDF",
			zap.Int64("contract_id", contract.ID),
			zap.Error(err))
	}

	if contract.Status == models.StatusApproved && existing.Status != models.StatusApproved {
		if err := s.sender.SendContractApproved(contract, contract.PDFPath); err != nil {
			s.logger.Error("Failed to send approval notification",
				zap.Int64("contract_id", contract.ID),
				zap.Error(err))
		}
	}

	return contract, nil
}

// Delete removes the contract and its generated PDF
func (s *ContractService) Delete(id int64) error {
	contract, err := s.Get(id)
	if err != nil {
		return err
	}

	if contract.PDFPath != "" {
		if err := os.Remove(contract.PDFPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove contract PDF",
				zap.String("pdf_path", contract.PDFPath),
				zap.Error(err))
		}
	}

	if _, err := s.contractRepo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("Contract deleted",
		zap.Int64("contract_id", id),
		zap.String("contract_number", contract.ContractNumber))
	return nil
}

// Document returns the composed agreement section list for a contract
func (s *ContractService) Document(id int64) ([]models.DocumentSection, error) {
	contract, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(contract, &contract.PaymentSchedule)
}

// PDF returns the rendered agreement as PDF bytes
func (s *ContractService) PDF(id int64) ([]byte, error) {
	sections, err := s.Document(id)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(sections)
}

// SendDocument emails the agreement PDF to the given recipient, generating
// the PDF first if it is missing.
func (s *ContractService) SendDocument(id int64, to string) error {
	contract, err := s.Get(id)
	if err != nil {
		return err
	}

	if contract.PDFPath == "" {
		if err := s.generatePDF(contract); err != nil {
			return err
		}
	}

	return s.sender.SendContractDocument(to, contract, contract.PDFPath)
}

// IngestSignedCopy stores an uploaded signed agreement under the upload
// directory and verifies that it is a readable PDF mentioning the contract
// number. A missing mention is reported, not rejected; scanners mangle text.
func (s *ContractService) IngestSignedCopy(id int64, filename string, src io.Reader) (*signedcopy.Result, error) {
	contract, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	stored := filepath.Join(s.uploadDir,
		fmt.Sprintf("signed_%s_%s%s", contract.ContractNumber, uuid.NewString(), filepath.Ext(filename)))

	out, err := os.Create(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to store signed copy: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(stored)
		return nil, fmt.Errorf("failed to store signed copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to store signed copy: %w", err)
	}

	result, err := s.verifier.Verify(stored, contract.ContractNumber)
	if err != nil {
		os.Remove(stored)
		return nil, err
	}

	if !result.ContractNumberFound {
		s.logger.Warn("Signed copy does not mention the contract number",
			zap.Int64("contract_id", id),
			zap.String("contract_number", contract.ContractNumber),
			zap.String("stored_path", stored))
	}

	result.StoredPath = stored
	return result, nil
}

// resolvePayload collapses the payload's legacy aliases and computes the
// payment schedule, producing a canonical contract ready to persist.
func (s *ContractService) resolvePayload(projectID int64, project *models.Project, payload *models.ContractPayload) (*models.Contract, error) {
	totalCost, err := payload.ResolveTotalCost()
	if err != nil {
		return nil, err
	}

	sched, err := schedule.Resolve(totalCost, schedule.Spec{
		UpfrontPercentage: payload.UpfrontPercentage,
		UpfrontAmount:     payload.UpfrontAmount,
		InstallmentCount:  payload.InstallmentCount,
		InstallmentAmount: payload.InstallmentAmount,
		DueDates:          payload.InstallmentDueDates,
	})
	if err != nil {
		return nil, err
	}

	status := payload.ResolveStatus()
	if !models.ValidStatus(status) {
		return nil, &schedule.InvalidInputError{Field: "status", Reason: "unknown status " + status}
	}

	contract := &models.Contract{
		ProjectID:       projectID,
		ContractNumber:  payload.ContractNumber,
		Title:           payload.Title,
		Description:     payload.Description,
		ClientName:      payload.ClientName,
		ClientEmail:     payload.ClientEmail,
		ClientPhone:     payload.ResolveClientPhone(),
		ClientAddress:   payload.ClientAddress,
		Status:          status,
		TotalCost:       totalCost,
		PaymentSchedule: *sched,
		AdditionalTerms: payload.ResolveAdditionalTerms(),
	}

	// Contracts usually inherit client details from their project.
	if project != nil {
		if contract.Title == "" {
			contract.Title = project.Name
		}
		if contract.ClientName == "" {
			contract.ClientName = project.ClientName
		}
		if contract.ClientEmail == "" {
			contract.ClientEmail = project.ClientEmail
		}
		if contract.ClientPhone == "" {
			contract.ClientPhone = project.ClientContact
		}
		if contract.ClientAddress == "" {
			contract.ClientAddress = project.ClientAddress
		}
	}

	for _, field := range []struct {
		name  string
		value string
		dest  **time.Time
	}{
		{"effectiveDate", payload.EffectiveDate, &contract.EffectiveDate},
		{"startDate", payload.StartDate, &contract.StartDate},
		{"endDate", payload.EndDate, &contract.EndDate},
	} {
		if field.value == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", field.value)
		if err != nil {
			return nil, &schedule.InvalidInputError{Field: field.name, Reason: "must be YYYY-MM-DD"}
		}
		*field.dest = &t
	}

	return contract, nil
}

// generatePDF composes and renders the agreement, writes it to the document
// directory and records the path on the contract row.
func (s *ContractService) generatePDF(contract *models.Contract) error {
	sections, err := s.composer.Compose(contract, &contract.PaymentSchedule)
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

	path := filepath.Join(s.documentDir, fmt.Sprintf("contract_%s.pdf", contract.ContractNumber))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	contract.PDFPath = path
	if _, err := s.contractRepo.Update(contract); err != nil {
		return err
	}

	s.logger.Info("Contract PDF generated",
		zap.String("contract_number", contract.ContractNumber),
		zap.String("pdf_path", path))
	return nil
}
