package service

import (
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/calvintech/inhouse-pos/internal/repository"
	"github.com/calvintech/inhouse-pos/internal/schedule"
	"github.com/calvintech/inhouse-pos/pkg/utils"
)

// ProjectService handles project CRUD and validation.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo *repository.ProjectRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create validates and persists a new project
func (s *ProjectService) Create(project *models.Project) error {
	if project.Name == "" {
		return &models.MissingFieldError{Field: "name"}
	}
	if project.ClientEmail != "" {
		if err := utils.ValidateEmail(project.ClientEmail); err != nil {
			return &schedule.InvalidInputError{Field: "clientEmail", Reason: "invalid email address"}
		}
	}
	if err := utils.ValidateAmount(project.Budget); err != nil {
		return &schedule.InvalidInputError{Field: "budget", Reason: "must be non-negative"}
	}

	project.Name = utils.SanitizeString(project.Name)
	if err := s.projectRepo.Create(project); err != nil {
		return err
	}

	s.logger.Info("Project created",
		zap.Int64("project_id", project.ID),
		zap.String("name", project.Name))
	return nil
}

// Get returns a project by id
func (s *ProjectService) Get(id int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &NotFoundError{Resource: "project", ID: id}
	}
	return project, nil
}

// List returns all projects
func (s *ProjectService) List() ([]*models.Project, error) {
	return s.projectRepo.List()
}

// Update persists changed project fields
func (s *ProjectService) Update(project *models.Project) error {
	if project.ClientEmail != "" {
		if err := utils.ValidateEmail(project.ClientEmail); err != nil {
			return &schedule.InvalidInputError{Field: "clientEmail", Reason: "invalid email address"}
		}
	}

	updated, err := s.projectRepo.Update(project)
	if err != nil {
		return err
	}
	if !updated {
		return &NotFoundError{Resource: "project", ID: project.ID}
	}
	return nil
}

// Delete removes a project. Contracts and invoices cascade at the schema level.
func (s *ProjectService) Delete(id int64) error {
	deleted, err := s.projectRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Resource: "project", ID: id}
	}

	s.logger.Info("Project deleted", zap.Int64("project_id", id))
	return nil
}
