package models

// ContractPayload is the raw shape accepted from API clients and older
// persisted rows. The schema drifted over time, so several fields carry
// legacy aliases; ResolveTotalCost and friends collapse them once here so
// business logic only ever sees the canonical Contract fields.
type ContractPayload struct {
	ContractNumber string  `json:"contractNumber"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	ClientPhone    string  `json:"clientPhone"`
	ClientContact  string  `json:"clientContact"` // legacy alias of clientPhone
	ClientAddress  string  `json:"clientAddress"`
	EffectiveDate  string  `json:"effectiveDate"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Status         string  `json:"status"`
	TotalCost      *float64 `json:"totalCost"`
	TotalAmount    *float64 `json:"totalAmount"` // legacy alias of totalCost
	Amount         *float64 `json:"amount"`      // oldest alias of totalCost
	AdditionalTerms    string `json:"additionalTerms"`
	TermsAndConditions string `json:"termsAndConditions"` // legacy alias of additionalTerms

	UpfrontPercentage *float64 `json:"upfrontPercentage"`
	UpfrontAmount     *float64 `json:"upfrontAmount"`
	InstallmentCount  *int     `json:"installmentCount"`
	InstallmentAmount *float64 `json:"installmentAmount"`
	InstallmentDueDates []string `json:"installmentDueDates"`
}

// ResolveTotalCost collapses the totalCost alias chain. Total cost cannot be
// defaulted: a payload where every alias is absent is rejected.
func (p *ContractPayload) ResolveTotalCost() (float64, error) {
	for _, v := range []*float64{p.TotalCost, p.TotalAmount, p.Amount} {
		if v != nil {
			return *v, nil
		}
	}
	return 0, &MissingFieldError{Field: "totalCost"}
}

// ResolveClientPhone collapses the clientPhone/clientContact alias pair.
func (p *ContractPayload) ResolveClientPhone() string {
	if p.ClientPhone != "" {
		return p.ClientPhone
	}
	return p.ClientContact
}

// ResolveAdditionalTerms collapses the additionalTerms alias pair.
func (p *ContractPayload) ResolveAdditionalTerms() string {
	if p.AdditionalTerms != "" {
		return p.AdditionalTerms
	}
	return p.TermsAndConditions
}

// ResolveStatus applies the draft default used throughout the system.
func (p *ContractPayload) ResolveStatus() string {
	if p.Status == "" {
		return StatusDraft
	}
	return p.Status
}
