package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// ProjectRepository handles project database operations
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new project row
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (
			name, description, client_name, client_email, client_contact,
			client_address, start_date, end_date, budget, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if project.Status == "" {
		project.Status = "active"
	}

	result, err := r.db.Exec(query,
		project.Name,
		project.Description,
		project.ClientName,
		project.ClientEmail,
		project.ClientContact,
		project.ClientAddress,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	project.ID = id
	return nil
}

// GetByID returns the project or nil when no row matches
func (r *ProjectRepository) GetByID(id int64) (*models.Project, error) {
	query := `
		SELECT id, name, description, client_name, client_email, client_contact,
			client_address, start_date, end_date, budget, status, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var project models.Project
	var startDate, endDate sql.NullTime

	err := r.db.QueryRow(query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.ClientName,
		&project.ClientEmail,
		&project.ClientContact,
		&project.ClientAddress,
		&startDate,
		&endDate,
		&project.Budget,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if startDate.Valid {
		project.StartDate = &startDate.Time
	}
	if endDate.Valid {
		project.EndDate = &endDate.Time
	}
	return &project, nil
}

// List returns all projects, newest first
func (r *ProjectRepository) List() ([]*models.Project, error) {
	query := `
		SELECT id, name, description, client_name, client_email, client_contact,
			client_address, start_date, end_date, budget, status, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		var startDate, endDate sql.NullTime

		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.ClientName,
			&project.ClientEmail,
			&project.ClientContact,
			&project.ClientAddress,
			&startDate,
			&endDate,
			&project.Budget,
			&project.Status,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if startDate.Valid {
			project.StartDate = &startDate.Time
		}
		if endDate.Valid {
			project.EndDate = &endDate.Time
		}
		projects = append(projects, &project)
	}
	return projects, rows.Err()
}

// Update persists changed project fields
func (r *ProjectRepository) Update(project *models.Project) (bool, error) {
	query := `
		UPDATE projects SET
			name = ?, description = ?, client_name = ?, client_email = ?,
			client_contact = ?, client_address = ?, start_date = ?, end_date = ?,
			budget = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		project.Name,
		project.Description,
		project.ClientName,
		project.ClientEmail,
		project.ClientContact,
		project.ClientAddress,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.Status,
		time.Now(),
		project.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int64("id", project.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatus moves the project to a new status
func (r *ProjectRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(
		"UPDATE projects SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	if err != nil {
		r.logger.Error("Failed to update project status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return nil
}

// Delete removes the project row; returns false when no row matched
func (r *ProjectRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
