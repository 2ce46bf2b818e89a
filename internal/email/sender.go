package email

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/calvintech/inhouse-pos/internal/config"
	"github.com/calvintech/inhouse-pos/internal/models"
)

// Sender delivers contract and invoice documents over SMTP. When email is
// disabled in config every send becomes a logged no-op so the rest of the
// pipeline never has to care.
type Sender struct {
	cfg    config.EmailConfig
	dial   func(m *gomail.Message) error
	logger *zap.Logger
}

// NewSender creates a new email sender
func NewSender(cfg config.EmailConfig, logger *zap.Logger) *Sender {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	return &Sender{
		cfg: cfg,
		dial: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
		logger: logger,
	}
}

// SendContractApproved notifies the client that their contract was approved,
// attaching the generated agreement PDF when one exists.
func (s *Sender) SendContractApproved(contract *models.Contract, pdfPath string) error {
	if contract.ClientEmail == "" {
		s.logger.Warn("Contract has no client email, skipping approval notification",
			zap.String("contract_number", contract.ContractNumber))
		return nil
	}

	subject := fmt.Sprintf("Contract %s approved", contract.ContractNumber)
	body := s.buildApprovalBody(contract)

	return s.send(contract.ClientEmail, subject, body, pdfPath)
}

// SendContractDocument emails the agreement PDF to an arbitrary recipient
func (s *Sender) SendContractDocument(to string, contract *models.Contract, pdfPath string) error {
	subject := fmt.Sprintf("Contract %s - %s", contract.ContractNumber, contract.Title)
	body := fmt.Sprintf(`Dear %s,

Please find attached the development services agreement %s.

Kind regards,
%s
`, orDefault(contract.ClientName, "Client"), contract.ContractNumber, s.fromName())

	return s.send(to, subject, body, pdfPath)
}

// SendInvoiceDocument emails an invoice PDF to the project's client
func (s *Sender) SendInvoiceDocument(to string, invoice *models.Invoice, pdfPath string) error {
	subject := fmt.Sprintf("Invoice %s", invoice.InvoiceNumber)
	body := fmt.Sprintf(`Dear Client,

Please find attached invoice %s for the amount of %.2f.

%s

Kind regards,
%s
`, invoice.InvoiceNumber, invoice.TotalAmount, invoice.PaymentTerms, s.fromName())

	return s.send(to, subject, body, pdfPath)
}

func (s *Sender) send(to, subject, body, attachmentPath string) error {
	if !s.cfg.Enabled {
		s.logger.Debug("Email disabled, skipping send",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := s.dial(m); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Bool("has_attachment", attachmentPath != ""))
	return nil
}

// buildApprovalBody builds the approval notification body
func (s *Sender) buildApprovalBody(contract *models.Contract) string {
	body := fmt.Sprintf(`Dear %s,

Your contract has been approved.

Contract details:
- Contract number: %s
- Title: %s
- Total cost: %.2f
- Approved on: %s
`,
		orDefault(contract.ClientName, "Client"),
		contract.ContractNumber,
		contract.Title,
		contract.TotalCost,
		time.Now().Format("2006-01-02"),
	)

	if contract.PDFPath != "" {
		body += fmt.Sprintf("\nThe signed agreement is attached as %s.\n", filepath.Base(contract.PDFPath))
	}

	body += fmt.Sprintf(`
This email was sent automatically. Please do not reply.

Kind regards,
%s
`, s.fromName())

	return body
}

func (s *Sender) fromName() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return "Calvin Tech Solutions"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
