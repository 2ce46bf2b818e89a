// Package invoicedoc composes invoice and financial statement documents
// using the same section model as the contract agreement.
package invoicedoc

import (
	"fmt"
	"time"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// Config mirrors the contract composer's injected formatting settings.
type Config struct {
	CurrencySymbol string
}

// Composer builds invoice and statement section lists.
type Composer struct {
	cfg Config
}

// NewComposer creates an invoice document composer.
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// ComposeInvoice builds the printable invoice for a project.
func (c *Composer) ComposeInvoice(invoice *models.Invoice, project *models.Project) ([]models.DocumentSection, error) {
	if invoice == nil || (invoice.ID == 0 && invoice.InvoiceNumber == "") {
		return nil, &models.MissingFieldError{Field: "id"}
	}

	details := models.DocumentSection{
		Title: "Invoice",
		Lines: []models.DocumentLine{
			{Text: fmt.Sprintf("Invoice Number: %s", invoice.InvoiceNumber)},
			{Text: fmt.Sprintf("Date: %s", invoice.CreatedAt.Format("January 2, 2006"))},
		},
	}
	if project != nil {
		details.Lines = append(details.Lines,
			models.DocumentLine{Text: fmt.Sprintf("Project: %s", project.Name)},
			models.DocumentLine{Text: fmt.Sprintf("Client: %s", project.ClientName)},
		)
	}

	items := models.DocumentSection{Title: "Items"}
	for n, item := range invoice.Items {
		items.Lines = append(items.Lines, models.DocumentLine{
			Index: n + 1,
			Text: fmt.Sprintf("%s - %s x %s = %s",
				item.Description,
				trimQuantity(item.Quantity),
				c.money(item.Price),
				c.money(item.Amount())),
		})
	}
	items.Lines = append(items.Lines, models.DocumentLine{
		Text: fmt.Sprintf("Total Amount: %s", c.money(invoice.TotalAmount)),
		Bold: true,
	})

	sections := []models.DocumentSection{details, items}
	if invoice.PaymentTerms != "" {
		sections = append(sections, models.DocumentSection{
			Title: "Payment Terms",
			Body:  invoice.PaymentTerms,
		})
	}
	return sections, nil
}

// StatementData aggregates everything the financial statement shows for a
// single project over a period.
type StatementData struct {
	Project       *models.Project
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Invoices      []*models.Invoice
	TotalRevenue  float64
	ContractCount int
}

// ComposeStatement builds a per-project financial statement.
func (c *Composer) ComposeStatement(data StatementData) ([]models.DocumentSection, error) {
	if data.Project == nil {
		return nil, &models.MissingFieldError{Field: "project"}
	}

	header := models.DocumentSection{
		Title: "Financial Statement",
		Lines: []models.DocumentLine{
			{Text: fmt.Sprintf("Project: %s", data.Project.Name)},
			{Text: fmt.Sprintf("Period: %s to %s",
				data.PeriodStart.Format("January 2, 2006"),
				data.PeriodEnd.Format("January 2, 2006"))},
		},
	}

	summary := models.DocumentSection{Title: "Invoices Summary"}
	for n, inv := range data.Invoices {
		summary.Lines = append(summary.Lines, models.DocumentLine{
			Index: n + 1,
			Text: fmt.Sprintf("Invoice #%s - %s - %s",
				inv.InvoiceNumber, c.money(inv.TotalAmount), inv.Status),
		})
	}

	totals := models.DocumentSection{
		Title: "Totals",
		Lines: []models.DocumentLine{
			{Text: fmt.Sprintf("Total Revenue: %s", c.money(data.TotalRevenue))},
			{Text: fmt.Sprintf("Number of Contracts: %d", data.ContractCount)},
			{Text: fmt.Sprintf("Number of Invoices: %d", len(data.Invoices))},
		},
	}

	return []models.DocumentSection{header, summary, totals}, nil
}

func (c *Composer) money(amount float64) string {
	symbol := c.cfg.CurrencySymbol
	if symbol == "" {
		symbol = "R"
	}
	return fmt.Sprintf("%s %.2f", symbol, amount)
}

func trimQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}
