package invoicedoc

import (
	"testing"
	"time"

	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeInvoice(t *testing.T) {
	composer := NewComposer(Config{CurrencySymbol: "R"})

	invoice := &models.Invoice{
		ID:            3,
		InvoiceNumber: "INV-20250301-0002",
		Items: []models.InvoiceItem{
			{Description: "Design sprint", Quantity: 2, Price: 1500},
			{Description: "Hosting setup", Quantity: 1, Price: 800.50},
		},
		PaymentTerms: "Payable within 30 days.",
		CreatedAt:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	invoice.TotalAmount = invoice.ComputeTotal()

	project := &models.Project{Name: "Inventory Portal", ClientName: "Acme Retail"}

	sections, err := composer.ComposeInvoice(invoice, project)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "Invoice", sections[0].Title)
	assert.Equal(t, "Invoice Number: INV-20250301-0002", sections[0].Lines[0].Text)
	assert.Equal(t, "Project: Inventory Portal", sections[0].Lines[2].Text)

	items := sections[1]
	require.Len(t, items.Lines, 3)
	assert.Equal(t, "Design sprint - 2 x R 1500.00 = R 3000.00", items.Lines[0].Text)
	assert.Equal(t, "Hosting setup - 1 x R 800.50 = R 800.50", items.Lines[1].Text)
	assert.Equal(t, "Total Amount: R 3800.50", items.Lines[2].Text)
	assert.True(t, items.Lines[2].Bold)

	assert.Equal(t, "Payment Terms", sections[2].Title)
	assert.Equal(t, "Payable within 30 days.", sections[2].Body)
}

func TestComposeInvoice_MissingIdentifier(t *testing.T) {
	composer := NewComposer(Config{})
	_, err := composer.ComposeInvoice(&models.Invoice{}, nil)

	var missing *models.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "id", missing.Field)
}

func TestComposeStatement(t *testing.T) {
	composer := NewComposer(Config{CurrencySymbol: "R"})

	data := StatementData{
		Project:     &models.Project{Name: "Inventory Portal"},
		PeriodStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Invoices: []*models.Invoice{
			{InvoiceNumber: "INV-1", TotalAmount: 5000, Status: models.InvoiceStatusPaid},
			{InvoiceNumber: "INV-2", TotalAmount: 2500, Status: models.InvoiceStatusSent},
		},
		TotalRevenue:  7500,
		ContractCount: 1,
	}

	sections, err := composer.ComposeStatement(data)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "Period: January 1, 2025 to June 30, 2025", sections[0].Lines[1].Text)
	assert.Equal(t, "Invoice #INV-1 - R 5000.00 - paid", sections[1].Lines[0].Text)
	assert.Equal(t, "Total Revenue: R 7500.00", sections[2].Lines[0].Text)
	assert.Equal(t, "Number of Invoices: 2", sections[2].Lines[2].Text)
}
