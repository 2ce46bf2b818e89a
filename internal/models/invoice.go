package models

import "time"

// Invoice statuses
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

// Invoice represents a billable document issued against a project.
type Invoice struct {
	ID            int64         `json:"id"`
	ProjectID     int64         `json:"project_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Items         []InvoiceItem `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentTerms  string        `json:"payment_terms"`
	Status        string        `json:"status"`
	PDFPath       string        `json:"pdf_path,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Amount returns the line total for the item.
func (it InvoiceItem) Amount() float64 {
	return it.Quantity * it.Price
}

// ComputeTotal sums all line amounts on the invoice.
func (inv *Invoice) ComputeTotal() float64 {
	total := 0.0
	for _, item := range inv.Items {
		total += item.Amount()
	}
	return total
}
