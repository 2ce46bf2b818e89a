// Package export writes financial statement data to spreadsheet workbooks
// for the accountant's side of the business.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
)

const statementSheet = "Statement"

// StatementWriter builds per-project financial statement workbooks.
type StatementWriter struct {
	companyName string
	logger      *zap.Logger
}

// NewStatementWriter creates a statement writer for the issuing company.
func NewStatementWriter(companyName string, logger *zap.Logger) *StatementWriter {
	return &StatementWriter{
		companyName: companyName,
		logger:      logger,
	}
}

// Write saves the statement workbook to outputPath: a header block, one row
// per invoice, and a totals block.
func (w *StatementWriter) Write(data invoicedoc.StatementData, outputPath string) error {
	w.logger.Info("Writing statement workbook",
		zap.String("project", data.Project.Name),
		zap.String("output_path", outputPath))

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		w.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	w.setCell(f, "A1", w.companyName)
	w.setCell(f, "A2", "Financial Statement")
	w.setCell(f, "A3", fmt.Sprintf("Project: %s", data.Project.Name))
	w.setCell(f, "A4", fmt.Sprintf("Period: %s to %s",
		data.PeriodStart.Format("2006-01-02"),
		data.PeriodEnd.Format("2006-01-02")))

	w.setCell(f, "A6", "Invoice Number")
	w.setCell(f, "B6", "Amount")
	w.setCell(f, "C6", "Status")
	w.setCell(f, "D6", "Issued")

	row := 7
	for _, inv := range data.Invoices {
		w.setCell(f, fmt.Sprintf("A%d", row), inv.InvoiceNumber)
		w.setCellValue(f, fmt.Sprintf("B%d", row), inv.TotalAmount)
		w.setCell(f, fmt.Sprintf("C%d", row), inv.Status)
		w.setCell(f, fmt.Sprintf("D%d", row), inv.CreatedAt.Format("2006-01-02"))
		row++
	}

	row++
	w.setCell(f, fmt.Sprintf("A%d", row), "Total Revenue")
	w.setCellValue(f, fmt.Sprintf("B%d", row), data.TotalRevenue)
	row++
	w.setCell(f, fmt.Sprintf("A%d", row), "Number of Contracts")
	w.setCellValue(f, fmt.Sprintf("B%d", row), data.ContractCount)
	row++
	w.setCell(f, fmt.Sprintf("A%d", row), "Number of Invoices")
	w.setCellValue(f, fmt.Sprintf("B%d", row), len(data.Invoices))

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Statement workbook written", zap.String("output_path", outputPath))
	return nil
}

func (w *StatementWriter) setCell(f *excelize.File, cell, value string) {
	w.setCellValue(f, cell, value)
}

func (w *StatementWriter) setCellValue(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(statementSheet, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
