package models

import "time"

// Contract statuses
const (
	StatusDraft      = "draft"
	StatusActive     = "active"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusCompleted  = "completed"
	StatusTerminated = "terminated"
	StatusExpired    = "expired"
)

// ContractStatuses lists every status a contract may hold.
var ContractStatuses = []string{
	StatusDraft, StatusActive, StatusApproved, StatusRejected,
	StatusCompleted, StatusTerminated, StatusExpired,
}

// Contract represents a development services agreement for a project.
type Contract struct {
	ID              int64           `json:"id"`
	ProjectID       int64           `json:"project_id"`
	ContractNumber  string          `json:"contract_number"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ClientName      string          `json:"client_name"`
	ClientEmail     string          `json:"client_email"`
	ClientPhone     string          `json:"client_phone"`
	ClientAddress   string          `json:"client_address"`
	EffectiveDate   *time.Time      `json:"effective_date"`
	StartDate       *time.Time      `json:"start_date"`
	EndDate         *time.Time      `json:"end_date"`
	Status          string          `json:"status"`
	TotalCost       float64         `json:"total_cost"`
	PaymentSchedule PaymentSchedule `json:"payment_schedule"`
	AdditionalTerms string          `json:"additional_terms"`
	PDFPath         string          `json:"pdf_path,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentSchedule is the fully resolved payment breakdown for a contract.
// It is persisted as a JSON column alongside the contract row.
type PaymentSchedule struct {
	Upfront      UpfrontPayment     `json:"upfront"`
	Installments InstallmentPayment `json:"installments"`
	// TotalPayments is upfront amount plus all installments. It only
	// disagrees with the contract total when rounding could not be
	// absorbed, in which case ReconciliationWarning is set.
	TotalPayments         float64 `json:"total_payments"`
	ReconciliationWarning bool    `json:"reconciliation_warning"`
}

// UpfrontPayment is the portion of the total due at signing.
type UpfrontPayment struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// InstallmentPayment describes the equal recurring payments covering the
// remainder after the upfront portion. DueDates may be shorter than Count;
// missing dates render as "TBD".
type InstallmentPayment struct {
	Count    int      `json:"count"`
	Amount   float64  `json:"amount"`
	DueDates []string `json:"due_dates,omitempty"`
}

// ValidStatus reports whether s is a known contract status.
func ValidStatus(s string) bool {
	for _, known := range ContractStatuses {
		if s == known {
			return true
		}
	}
	return false
}
