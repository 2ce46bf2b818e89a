package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestResolveTotalCost_AliasPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		payload ContractPayload
		want    float64
	}{
		{
			name:    "totalCost wins over every alias",
			payload: ContractPayload{TotalCost: fptr(100), TotalAmount: fptr(200), Amount: fptr(300)},
			want:    100,
		},
		{
			name:    "totalAmount wins over amount",
			payload: ContractPayload{TotalAmount: fptr(200), Amount: fptr(300)},
			want:    200,
		},
		{
			name:    "amount as last resort",
			payload: ContractPayload{Amount: fptr(300)},
			want:    300,
		},
		{
			name:    "explicit zero is a value, not an absence",
			payload: ContractPayload{TotalCost: fptr(0), Amount: fptr(300)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.ResolveTotalCost()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTotalCost_AllAbsent(t *testing.T) {
	payload := ContractPayload{Title: "No money fields"}

	_, err := payload.ResolveTotalCost()
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "totalCost", missing.Field)
}

func TestResolveClientPhone(t *testing.T) {
	assert.Equal(t, "123",
		(&ContractPayload{ClientPhone: "123", ClientContact: "456"}).ResolveClientPhone())
	assert.Equal(t, "456",
		(&ContractPayload{ClientContact: "456"}).ResolveClientPhone())
	assert.Equal(t, "", (&ContractPayload{}).ResolveClientPhone())
}

func TestResolveAdditionalTerms(t *testing.T) {
	assert.Equal(t, "new",
		(&ContractPayload{AdditionalTerms: "new", TermsAndConditions: "old"}).ResolveAdditionalTerms())
	assert.Equal(t, "old",
		(&ContractPayload{TermsAndConditions: "old"}).ResolveAdditionalTerms())
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, StatusDraft, (&ContractPayload{}).ResolveStatus())
	assert.Equal(t, StatusActive, (&ContractPayload{Status: StatusActive}).ResolveStatus())
}

func TestValidStatus(t *testing.T) {
	for _, s := range ContractStatuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("pending"))
}

func TestInvoiceComputeTotal(t *testing.T) {
	inv := &Invoice{Items: []InvoiceItem{
		{Description: "Design", Quantity: 2, Price: 1500},
		{Description: "Hosting", Quantity: 12, Price: 99.50},
	}}
	assert.InDelta(t, 4194, inv.ComputeTotal(), 0.001)
	assert.Equal(t, 0.0, (&Invoice{}).ComputeTotal())
}
