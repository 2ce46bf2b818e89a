// Package render turns composed document sections into concrete artifacts.
// The section model stays layout-agnostic; everything font- and
// spacing-related lives here.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// PDFRenderer renders section lists as A4 portrait PDFs.
type PDFRenderer struct {
	logger *zap.Logger
}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

// Render produces the PDF bytes for a composed document. The first section
// is treated as the document header and centered; numbered sections get an
// underlined title; indexed lines are indented as a sub-list.
func (r *PDFRenderer) Render(sections []models.DocumentSection) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("nothing to render: empty section list")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	for i, section := range sections {
		if i == 0 {
			r.header(pdf, section)
			continue
		}
		r.section(pdf, section)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("PDF generation failed", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	r.logger.Debug("Rendered PDF document",
		zap.Int("sections", len(sections)),
		zap.Int("size_bytes", buf.Len()))

	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, section models.DocumentSection) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, section.Title, "", 1, "C", false, 0, "")
	if section.Body != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, section.Body, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func (r *PDFRenderer) section(pdf *gofpdf.Fpdf, section models.DocumentSection) {
	if section.Title != "" {
		title := section.Title
		if section.Number > 0 {
			title = fmt.Sprintf("%d. %s", section.Number, title)
		}
		pdf.SetFont("Helvetica", "BU", 13)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	if section.Body != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.Body, "", "L", false)
		pdf.Ln(2)
	}

	for _, line := range section.Lines {
		style := ""
		if line.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)

		indent := 0.0
		if line.Index > 0 {
			indent = 8
		}
		pdf.SetX(pdf.GetX() + indent)
		pdf.MultiCell(0, 6, line.Text, "", "L", false)
	}

	pdf.Ln(4)
}
