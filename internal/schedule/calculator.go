// Package schedule resolves a contract's payment breakdown from a total
// cost and a partial upfront/installment specification.
package schedule

import (
	"math"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// ReconciliationTolerance is the maximum gap, in currency minor units,
// between the contract total and the sum of all resolved payments before a
// reconciliation warning is raised. The comparison is strict (> 0.01) on
// raw float64 values; a rounded one-cent gap usually lands fractionally
// above the tolerance and is flagged.
const ReconciliationTolerance = 0.01

// Spec is a partial payment specification as supplied by the caller. Nil
// fields are resolved from the total cost; explicitly supplied amounts win
// over percentages and counts.
type Spec struct {
	UpfrontPercentage *float64
	UpfrontAmount     *float64
	InstallmentCount  *int
	InstallmentAmount *float64
	DueDates          []string
}

// Resolve derives a complete payment schedule from totalCost and spec.
//
// Upfront resolution prefers an explicit amount, then a percentage of the
// total, then zero. The remainder is split over the installment count with
// the per-installment amount rounded half-up to 2 decimals, unless an
// explicit installment amount was given. If the resolved payments do not
// sum back to the total within ReconciliationTolerance the schedule is
// flagged, never rejected: callers surface the discrepancy to the reader.
//
// Resolve is pure; it never mutates spec and identical inputs always
// produce identical output.
func Resolve(totalCost float64, spec Spec) (*models.PaymentSchedule, error) {
	if err := validate(totalCost, spec); err != nil {
		return nil, err
	}

	sched := &models.PaymentSchedule{}

	switch {
	case spec.UpfrontAmount != nil:
		sched.Upfront.Amount = *spec.UpfrontAmount
		if spec.UpfrontPercentage != nil {
			sched.Upfront.Percentage = *spec.UpfrontPercentage
		} else if totalCost > 0 {
			sched.Upfront.Percentage = roundMoney(*spec.UpfrontAmount / totalCost * 100)
		}
	case spec.UpfrontPercentage != nil:
		sched.Upfront.Percentage = *spec.UpfrontPercentage
		sched.Upfront.Amount = totalCost * *spec.UpfrontPercentage / 100
	}

	remaining := totalCost - sched.Upfront.Amount

	if spec.InstallmentCount != nil {
		sched.Installments.Count = *spec.InstallmentCount
	}
	if sched.Installments.Count > 0 {
		if spec.InstallmentAmount != nil {
			sched.Installments.Amount = *spec.InstallmentAmount
		} else {
			sched.Installments.Amount = roundMoney(remaining / float64(sched.Installments.Count))
		}
		sched.Installments.DueDates = append([]string(nil), spec.DueDates...)
	}

	sched.TotalPayments = sched.Upfront.Amount +
		sched.Installments.Amount*float64(sched.Installments.Count)
	sched.ReconciliationWarning = math.Abs(sched.TotalPayments-totalCost) > ReconciliationTolerance

	return sched, nil
}

func validate(totalCost float64, spec Spec) error {
	if badNumber(totalCost) || totalCost < 0 {
		return &InvalidInputError{Field: "totalCost", Reason: "must be a non-negative number"}
	}
	if p := spec.UpfrontPercentage; p != nil {
		if badNumber(*p) || *p < 0 || *p > 100 {
			return &InvalidInputError{Field: "upfrontPercentage", Reason: "must be between 0 and 100"}
		}
	}
	if a := spec.UpfrontAmount; a != nil {
		if badNumber(*a) || *a < 0 {
			return &InvalidInputError{Field: "upfrontAmount", Reason: "must be a non-negative number"}
		}
	}
	if c := spec.InstallmentCount; c != nil && *c < 0 {
		return &InvalidInputError{Field: "installmentCount", Reason: "must be zero or a positive integer"}
	}
	if a := spec.InstallmentAmount; a != nil {
		if badNumber(*a) || *a < 0 {
			return &InvalidInputError{Field: "installmentAmount", Reason: "must be a non-negative number"}
		}
	}
	return nil
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// roundMoney rounds half-up to 2 decimal places.
func roundMoney(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
