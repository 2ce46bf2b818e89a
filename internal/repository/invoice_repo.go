package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// InvoiceRepository handles invoice database operations. Line items are
// stored as a JSON column.
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new invoice row
func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	itemsJSON, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	query := `
		INSERT INTO invoices (
			project_id, invoice_number, items, total_amount, payment_terms,
			status, pdf_path
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		invoice.ProjectID,
		invoice.InvoiceNumber,
		string(itemsJSON),
		invoice.TotalAmount,
		invoice.PaymentTerms,
		invoice.Status,
		invoice.PDFPath,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	invoice.ID = id
	return nil
}

const invoiceColumns = `
	id, project_id, invoice_number, items, total_amount, payment_terms,
	status, pdf_path, created_at, updated_at
`

// GetByID returns the invoice or nil when no row matches
func (r *InvoiceRepository) GetByID(id int64) (*models.Invoice, error) {
	row := r.db.QueryRow("SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id)

	invoice, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get invoice", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List() ([]*models.Invoice, error) {
	return r.list("SELECT " + invoiceColumns + " FROM invoices ORDER BY created_at DESC")
}

// ListByProject returns all invoices belonging to a project
func (r *InvoiceRepository) ListByProject(projectID int64) ([]*models.Invoice, error) {
	return r.list(
		"SELECT "+invoiceColumns+" FROM invoices WHERE project_id = ? ORDER BY created_at DESC",
		projectID)
}

func (r *InvoiceRepository) list(query string, args ...interface{}) ([]*models.Invoice, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) scan(row scanner) (*models.Invoice, error) {
	var invoice models.Invoice
	var itemsJSON string

	err := row.Scan(
		&invoice.ID,
		&invoice.ProjectID,
		&invoice.InvoiceNumber,
		&itemsJSON,
		&invoice.TotalAmount,
		&invoice.PaymentTerms,
		&invoice.Status,
		&invoice.PDFPath,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &invoice.Items); err != nil {
			r.logger.Warn("Failed to parse stored invoice items",
				zap.Int64("invoice_id", invoice.ID),
				zap.Error(err))
		}
	}
	return &invoice, nil
}

// Update persists changed invoice fields; returns false when no row matched
func (r *InvoiceRepository) Update(invoice *models.Invoice) (bool, error) {
	itemsJSON, err := json.Marshal(invoice.Items)
	if err != nil {
		return false, fmt.Errorf("failed to marshal items: %w", err)
	}

	query := `
		UPDATE invoices SET
			invoice_number = ?, items = ?, total_amount = ?, payment_terms = ?,
			status = ?, pdf_path = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		invoice.InvoiceNumber,
		string(itemsJSON),
		invoice.TotalAmount,
		invoice.PaymentTerms,
		invoice.Status,
		invoice.PDFPath,
		time.Now(),
		invoice.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", invoice.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the invoice row; returns false when no row matched
func (r *InvoiceRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to delete invoice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// GenerateInvoiceNumber generates the next invoice number for today.
// Format: INV-YYYYMMDD-NNNN.
func (r *InvoiceRepository) GenerateInvoiceNumber() (string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("INV-%s-", now.Format("20060102"))

	var last string
	err := r.db.QueryRow(`
		SELECT invoice_number
		FROM invoices
		WHERE invoice_number LIKE ?
		ORDER BY invoice_number DESC
		LIMIT 1
	`, prefix+"%").Scan(&last)

	sequence := 1
	if err == nil && last != "" {
		var seq int
		if _, err := fmt.Sscanf(last, prefix+"%d", &seq); err == nil {
			sequence = seq + 1
		}
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}
