package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// ContractRepository handles contract database operations. The resolved
// payment schedule is stored as a JSON column next to the contract row.
type ContractRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *sql.DB, logger *zap.Logger) *ContractRepository {
	return &ContractRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new contract row
func (r *ContractRepository) Create(contract *models.Contract) error {
	scheduleJSON, err := json.Marshal(contract.PaymentSchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal payment schedule: %w", err)
	}

	query := `
		INSERT INTO contracts (
			project_id, contract_number, title, description, client_name,
			client_email, client_phone, client_address, effective_date,
			start_date, end_date, status, total_cost, payment_schedule,
			additional_terms, pdf_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		contract.ProjectID,
		contract.ContractNumber,
		contract.Title,
		contract.Description,
		contract.ClientName,
		contract.ClientEmail,
		contract.ClientPhone,
		contract.ClientAddress,
		contract.EffectiveDate,
		contract.StartDate,
		contract.EndDate,
		contract.Status,
		contract.TotalCost,
		string(scheduleJSON),
		contract.AdditionalTerms,
		contract.PDFPath,
	)
	if err != nil {
		r.logger.Error("Failed to create contract", zap.Error(err))
		return fmt.Errorf("failed to create contract: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	contract.ID = id
	return nil
}

const contractColumns = `
	id, project_id, contract_number, title, description, client_name,
	client_email, client_phone, client_address, effective_date, start_date,
	end_date, status, total_cost, payment_schedule, additional_terms,
	pdf_path, created_at, updated_at
`

// GetByID returns the contract or nil when no row matches
func (r *ContractRepository) GetByID(id int64) (*models.Contract, error) {
	row := r.db.QueryRow(
		"SELECT "+contractColumns+" FROM contracts WHERE id = ?", id)

	contract, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get contract", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return contract, nil
}

// List returns all contracts, newest first
func (r *ContractRepository) List() ([]*models.Contract, error) {
	return r.list("SELECT " + contractColumns + " FROM contracts ORDER BY created_at DESC")
}

// ListByProject returns all contracts belonging to a project
func (r *ContractRepository) ListByProject(projectID int64) ([]*models.Contract, error) {
	return r.list(
		"SELECT "+contractColumns+" FROM contracts WHERE project_id = ? ORDER BY created_at DESC",
		projectID)
}

func (r *ContractRepository) list(query string, args ...interface{}) ([]*models.Contract, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to list contracts", zap.Error(err))
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		contract, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *ContractRepository) scan(row scanner) (*models.Contract, error) {
	var contract models.Contract
	var effectiveDate, startDate, endDate sql.NullTime
	var scheduleJSON string

	err := row.Scan(
		&contract.ID,
		&contract.ProjectID,
		&contract.ContractNumber,
		&contract.Title,
		&contract.Description,
		&contract.ClientName,
		&contract.ClientEmail,
		&contract.ClientPhone,
		&contract.ClientAddress,
		&effectiveDate,
		&startDate,
		&endDate,
		&contract.Status,
		&contract.TotalCost,
		&scheduleJSON,
		&contract.AdditionalTerms,
		&contract.PDFPath,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if effectiveDate.Valid {
		contract.EffectiveDate = &effectiveDate.Time
	}
	if startDate.Valid {
		contract.StartDate = &startDate.Time
	}
	if endDate.Valid {
		contract.EndDate = &endDate.Time
	}

	if scheduleJSON != "" && scheduleJSON != "{}" {
		if err := json.Unmarshal([]byte(scheduleJSON), &contract.PaymentSchedule); err != nil {
			r.logger.Warn("Failed to parse stored payment schedule",
				zap.Int64("contract_id", contract.ID),
				zap.Error(err))
		}
	}
	return &contract, nil
}

// Update persists changed contract fields; returns false when no row matched
func (r *ContractRepository) Update(contract *models.Contract) (bool, error) {
	scheduleJSON, err := json.Marshal(contract.PaymentSchedule)
	if err != nil {
		return false, fmt.Errorf("failed to marshal payment schedule: %w", err)
	}

	query := `
		UPDATE contracts SET
			contract_number = ?, title = ?, description = ?, client_name = ?,
			client_email = ?, client_phone = ?, client_address = ?,
			effective_date = ?, start_date = ?, end_date = ?, status = ?,
			total_cost = ?, payment_schedule = ?, additional_terms = ?,
			pdf_path = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		contract.ContractNumber,
		contract.Title,
		contract.Description,
		contract.ClientName,
		contract.ClientEmail,
		contract.ClientPhone,
		contract.ClientAddress,
		contract.EffectiveDate,
		contract.StartDate,
		contract.EndDate,
		contract.Status,
		contract.TotalCost,
		string(scheduleJSON),
		contract.AdditionalTerms,
		contract.PDFPath,
		time.Now(),
		contract.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update contract", zap.Int64("id", contract.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update contract: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the contract row; returns false when no row matched
func (r *ContractRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM contracts WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete contract", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to delete contract: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// GenerateContractNumber generates the next contract number for today.
// Format: CT-YYYYMMDD-NNNN.
func (r *ContractRepository) GenerateContractNumber() (string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("CT-%s-", now.Format("20060102"))

	query := `
		SELECT contract_number
		FROM contracts
		WHERE contract_number LIKE ?
		ORDER BY contract_number DESC
		LIMIT 1
	`

	var last string
	err := r.db.QueryRow(query, prefix+"%").Scan(&last)

	sequence := 1
	if err == nil && last != "" {
		var seq int
		if _, err := fmt.Sscanf(last, prefix+"%d", &seq); err == nil {
			sequence = seq + 1
		}
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}
