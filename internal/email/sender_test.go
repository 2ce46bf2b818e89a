package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/calvintech/inhouse-pos/internal/config"
	"github.com/calvintech/inhouse-pos/internal/models"
)

func testContract() *models.Contract {
	return &models.Contract{
		ID:             7,
		ContractNumber: "CT-20250315-0001",
		Title:          "Inventory Portal",
		ClientName:     "Jane Smit",
		ClientEmail:    "jane@acme.example",
		TotalCost:      10000,
		PDFPath:        "generated_documents/contract_CT-20250315-0001.pdf",
	}
}

func TestSender_DisabledSkipsDelivery(t *testing.T) {
	dialed := false
	s := NewSender(config.EmailConfig{Enabled: false}, zap.NewNop())
	s.dial = func(m *gomail.Message) error {
		dialed = true
		return nil
	}

	err := s.SendContractApproved(testContract(), "")
	require.NoError(t, err)
	assert.False(t, dialed)
}

func TestSender_SendsApprovalWithAttachment(t *testing.T) {
	var sent *gomail.Message
	s := NewSender(config.EmailConfig{
		Enabled:  true,
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		From:     "billing@calvintech.example",
	}, zap.NewNop())
	s.dial = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	contract := testContract()
	require.NoError(t, s.SendContractApproved(contract, contract.PDFPath))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"jane@acme.example"}, sent.GetHeader("To"))
	assert.Contains(t, sent.GetHeader("Subject")[0], "CT-20250315-0001")
}

func TestSender_NoClientEmailIsNoop(t *testing.T) {
	dialed := false
	s := NewSender(config.EmailConfig{Enabled: true, SMTPHost: "smtp.example.com"}, zap.NewNop())
	s.dial = func(m *gomail.Message) error {
		dialed = true
		return nil
	}

	contract := testContract()
	contract.ClientEmail = ""
	require.NoError(t, s.SendContractApproved(contract, ""))
	assert.False(t, dialed)
}

func TestBuildApprovalBody(t *testing.T) {
	s := NewSender(config.EmailConfig{From: "billing@calvintech.example"}, zap.NewNop())

	body := s.buildApprovalBody(testContract())
	assert.Contains(t, body, "Dear Jane Smit")
	assert.Contains(t, body, "CT-20250315-0001")
	assert.Contains(t, body, "10000.00")
	assert.Contains(t, body, "contract_CT-20250315-0001.pdf")
}
