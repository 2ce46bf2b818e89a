// Package contractdoc assembles the development services agreement as an
// ordered, renderer-agnostic section list.
package contractdoc

import (
	"fmt"
	"time"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// DocumentTitle is the fixed heading of every composed agreement.
const DocumentTitle = "DEVELOPMENT SERVICES AGREEMENT"

// Config carries the issuing party's identity and formatting conventions.
// Injected so nothing in the composition logic hardcodes the business.
type Config struct {
	IssuerName     string
	CurrencySymbol string
	GoverningLaw   string
}

// Composer turns a contract and its resolved payment schedule into the
// fixed-order section list of the agreement. Composition is a pure,
// single-pass transformation: it either returns the full list or fails.
type Composer struct {
	cfg Config
}

// NewComposer creates a composer for the given issuing party.
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// Compose builds the full agreement. Missing optional data falls back to
// bracketed placeholders so an incomplete contract still renders as a
// legible template; only a missing identifier aborts.
func (c *Composer) Compose(contract *models.Contract, sched *models.PaymentSchedule) ([]models.DocumentSection, error) {
	if contract == nil || (contract.ID == 0 && contract.ContractNumber == "") {
		return nil, &models.MissingFieldError{Field: "id"}
	}

	contractNumber := contract.ContractNumber
	if contractNumber == "" {
		contractNumber = fmt.Sprintf("CONTRACT-%06d", contract.ID)
	}

	sections := []models.DocumentSection{
		{
			Title: DocumentTitle,
			Body:  fmt.Sprintf("Contract #%s", contractNumber),
		},
		{
			Body: fmt.Sprintf(
				`This Contract Agreement ("Agreement") is entered into on %s ("Effective Date") by and between %s ("Developer") and %s ("Client") for the development and deployment of the %s ("Project").`,
				c.effectiveDate(contract),
				orPlaceholder(c.cfg.IssuerName, "[Your Company Name]"),
				orPlaceholder(contract.ClientName, "[Client Name]"),
				orPlaceholder(contract.Title, "[Project Name]"),
			),
		},
		{
			Number: 1,
			Title:  "Scope of Work",
			Body: fmt.Sprintf(
				"The Developer agrees to design, develop, and deploy the Project, including %s, as outlined in the proposal dated %s.",
				orPlaceholder(contract.Description, "all specified features"),
				c.effectiveDate(contract),
			),
		},
		c.paymentTerms(contract, sched),
		{
			Number: 3,
			Title:  "Intellectual Property",
			Body:   "The Developer retains ownership of the intellectual property rights to the Project, including any custom code, designs, and other creative works. The Client is granted a non-exclusive license to use the Project for their business purposes.",
		},
		{
			Number: 4,
			Title:  "Maintenance and Support",
			Body:   "The Developer may offer optional maintenance and support services, including updates, upgrades, and technical support, for an additional fee.",
		},
		{
			Number: 5,
			Title:  "Termination",
			Body:   "Either party may terminate this Agreement upon written notice to the other party. Upon termination, the Client shall pay the Developer for all work completed prior to termination.",
		},
		{
			Number: 6,
			Title:  "Governing Law",
			Body:   fmt.Sprintf("This Agreement shall be governed by and construed in accordance with the laws of %s.", orPlaceholder(c.cfg.GoverningLaw, "[Jurisdiction]")),
		},
		c.signatures(contract),
	}

	return sections, nil
}

// paymentTerms builds section 2. The upfront line only appears for a
// nonzero percentage, the installment sub-list only for a nonzero count,
// and the bold Total Payments disclosure only when the schedule failed to
// reconcile with the contract total.
func (c *Composer) paymentTerms(contract *models.Contract, sched *models.PaymentSchedule) models.DocumentSection {
	section := models.DocumentSection{
		Number: 2,
		Title:  "Payment Terms",
		Lines: []models.DocumentLine{
			{Text: fmt.Sprintf("Total Project Cost: %s", c.money(contract.TotalCost))},
		},
	}

	if sched == nil {
		return section
	}

	if sched.Upfront.Percentage > 0 {
		section.Lines = append(section.Lines, models.DocumentLine{
			Text: fmt.Sprintf("Upfront Payment: %s%% of %s = %s (due upon signing of this Agreement)",
				trimPercent(sched.Upfront.Percentage),
				c.money(contract.TotalCost),
				c.money(sched.Upfront.Amount)),
		})
	}

	if sched.Installments.Count > 0 {
		section.Lines = append(section.Lines, models.DocumentLine{Text: "Installment Payments:"})
		for n := 1; n <= sched.Installments.Count; n++ {
			section.Lines = append(section.Lines, models.DocumentLine{
				Index: n,
				Text: fmt.Sprintf("%d. %s due on %s",
					n, c.money(sched.Installments.Amount), dueDate(sched.Installments.DueDates, n)),
			})
		}
	}

	if sched.ReconciliationWarning {
		section.Lines = append(section.Lines, models.DocumentLine{
			Text: fmt.Sprintf("Total Payments: %s", c.money(sched.TotalPayments)),
			Bold: true,
		})
	}

	return section
}

func (c *Composer) signatures(contract *models.Contract) models.DocumentSection {
	return models.DocumentSection{
		Title: "Signatures",
		Body:  "By signing below, the parties acknowledge that they have read, understand, and agree to be bound by the terms and conditions of this Agreement.",
		Lines: []models.DocumentLine{
			{Text: "Client Signature", Bold: true},
			{Text: orPlaceholder(contract.ClientName, "[Client Name]")},
			{Text: "Signature: ______________________"},
			{Text: "Date: ___________________________"},
			{Text: "Developer Signature", Bold: true},
			{Text: orPlaceholder(c.cfg.IssuerName, "[Your Company Name]")},
			{Text: "Signature: ______________________"},
			{Text: "Date: ___________________________"},
		},
	}
}

// effectiveDate formats the contract's effective date as "January 2, 2006",
// falling back to creation time the way the legacy documents did.
func (c *Composer) effectiveDate(contract *models.Contract) string {
	when := contract.EffectiveDate
	if when == nil {
		if contract.CreatedAt.IsZero() {
			return "[Effective Date]"
		}
		when = &contract.CreatedAt
	}
	return when.Format("January 2, 2006")
}

func (c *Composer) money(amount float64) string {
	symbol := c.cfg.CurrencySymbol
	if symbol == "" {
		symbol = "R"
	}
	return fmt.Sprintf("%s %.2f", symbol, amount)
}

func orPlaceholder(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func dueDate(dates []string, n int) string {
	if n-1 < len(dates) && dates[n-1] != "" {
		if t, err := time.Parse("2006-01-02", dates[n-1]); err == nil {
			return t.Format("January 2, 2006")
		}
		return dates[n-1]
	}
	return "TBD"
}

// trimPercent drops a trailing ".00" so whole percentages read naturally.
func trimPercent(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%.2f", p)
}
