package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
)

func sampleSections() []models.DocumentSection {
	return []models.DocumentSection{
		{Title: "DEVELOPMENT SERVICES AGREEMENT", Body: "Contract #CT-20250315-0001"},
		{Number: 1, Title: "Scope of Work", Body: "The Developer agrees to build the thing."},
		{
			Number: 2,
			Title:  "Payment Terms",
			Lines: []models.DocumentLine{
				{Text: "Total Project Cost: R 10000.00"},
				{Index: 1, Text: "1. R 2000.00 due on TBD"},
				{Text: "Total Payments: R 8500.00", Bold: true},
			},
		},
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	renderer := NewPDFRenderer(zap.NewNop())

	data, err := renderer.Render(sampleSections())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderer_EmptyInput(t *testing.T) {
	renderer := NewPDFRenderer(zap.NewNop())
	_, err := renderer.Render(nil)
	require.Error(t, err)
}

func TestText(t *testing.T) {
	out := Text(sampleSections())

	assert.Contains(t, out, "DEVELOPMENT SERVICES AGREEMENT\n")
	assert.Contains(t, out, "1. Scope of Work\n")
	assert.Contains(t, out, "Total Project Cost: R 10000.00\n")
	// Indexed sub-list lines are indented.
	assert.Contains(t, out, "  1. R 2000.00 due on TBD\n")
}

func TestText_Deterministic(t *testing.T) {
	assert.Equal(t, Text(sampleSections()), Text(sampleSections()))
}
