package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/models"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/schedule"
	"github.com/calvintech/inhouse-pos/internal/service"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	projects   *service.ProjectService
	contracts  *service.ContractService
	invoices   *service.InvoiceService
	statements *service.StatementService
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	projects *service.ProjectService,
	contracts *service.ContractService,
	invoices *service.InvoiceService,
	statements *service.StatementService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		projects:   projects,
		contracts:  contracts,
		invoices:   invoices,
		statements: statements,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// idParam parses the :id path parameter
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var missing *models.MissingFieldError
	var invalid *schedule.InvalidInputError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: notFound.Error()})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: missing.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: invalid.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

// --- Projects ---

// ListProjects handles GET /api/projects
func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.projects.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: projects})
}

// CreateProject handles POST /api/projects
func (h *Handlers) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.projects.Create(&project); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: project})
}

// GetProject handles GET /api/projects/:id
func (h *Handlers) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: project})
}

// UpdateProject handles PUT /api/projects/:id
func (h *Handlers) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}
	project.ID = id

	if err := h.projects.Update(&project); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: project})
}

// DeleteProject handles DELETE /api/projects/:id
func (h *Handlers) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// --- Contracts ---

// ListContracts handles GET /api/contracts
func (h *Handlers) ListContracts(c *gin.Context) {
	contracts, err := h.contracts.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: contracts})
}

// ListProjectContracts handles GET /api/projects/:id/contracts
func (h *Handlers) ListProjectContracts(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	contracts, err := h.contracts.ListByProject(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: contracts})
}

// CreateContract handles POST /api/projects/:id/contracts
func (h *Handlers) CreateContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload models.ContractPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	contract, err := h.contracts.Create(id, &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: contract})
}

// GetContract handles GET /api/contracts/:id
func (h *Handlers) GetContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	contract, err := h.contracts.Get(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: contract})
}

// UpdateContract handles PUT /api/contracts/:id
func (h *Handlers) UpdateContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload models.ContractPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	contract, err := h.contracts.Update(id, &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: contract})
}

// DeleteContract handles DELETE /api/contracts/:id
func (h *Handlers) DeleteContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ContractDocument handles GET /api/contracts/:id/document. With
// ?format=text the composed agreement is returned as plain text instead of
// the section model.
func (h *Handlers) ContractDocument(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	sections, err := h.contracts.Document(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, render.Text(sections))
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: sections})
}

// SendRequest is the body of the document send endpoints
type SendRequest struct {
	To string `json:"to" binding:"required,email"`
}

// SendContract handles POST /api/contracts/:id/send
func (h *Handlers) SendContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "a valid recipient email is required"})
		return
	}

	if err := h.contracts.SendDocument(id, req.To); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ContractPDF handles GET /api/contracts/:id/pdf
func (h *Handlers) ContractPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	data, err := h.contracts.PDF(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=contract.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// UploadSignedCopy handles POST /api/contracts/:id/signed-copy
func (h *Handlers) UploadSignedCopy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "file is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer src.Close()

	result, err := h.contracts.IngestSignedCopy(id, fileHeader.Filename, src)
	if err != nil {
		var notFound *service.NotFoundError
		if errors.As(err, &notFound) {
			h.writeError(c, err)
			return
		}
		// Unreadable uploads are a client problem, not a server one.
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// --- Invoices ---

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoices})
}

// ListProjectInvoices handles GET /api/projects/:id/invoices
func (h *Handlers) ListProjectInvoices(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	invoices, err := h.invoices.ListByProject(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoices})
}

// CreateInvoice handles POST /api/projects/:id/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload service.InvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoices.Create(id, &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: invoice})
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.Get(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// UpdateInvoice handles PUT /api/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload service.InvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoices.Update(id, &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// DeleteInvoice handles DELETE /api/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.invoices.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// SendInvoice handles POST /api/invoices/:id/send
func (h *Handlers) SendInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "a valid recipient email is required"})
		return
	}

	if err := h.invoices.SendDocument(id, req.To); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// InvoicePDF handles GET /api/invoices/:id/pdf
func (h *Handlers) InvoicePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	data, err := h.invoices.PDF(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=invoice.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// --- Statements ---

// statementPeriod parses the from/to query parameters, defaulting to the
// current calendar year.
func statementPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	end := now

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "from must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "to must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, true
}

// StatementPDF handles GET /api/projects/:id/statement
func (h *Handlers) StatementPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	start, end, ok := statementPeriod(c)
	if !ok {
		return
	}

	data, err := h.statements.PDF(id, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=statement.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// StatementExport handles GET /api/projects/:id/statement/export
func (h *Handlers) StatementExport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	start, end, ok := statementPeriod(c)
	if !ok {
		return
	}

	path, err := h.statements.ExportXLSX(id, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.FileAttachment(path, "statement.xlsx")
}
