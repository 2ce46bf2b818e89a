package http

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/config"
	"github.com/calvintech/inhouse-pos/internal/contractdoc"
	"github.com/calvintech/inhouse-pos/internal/email"
	"github.com/calvintech/inhouse-pos/internal/export"
	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
	"github.com/calvintech/inhouse-pos/internal/service"
	"github.com/calvintech/inhouse-pos/internal/signedcopy"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := zap.NewNop()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	projectRepo := repository.NewProjectRepository(db, logger)
	contractRepo := repository.NewContractRepository(db, logger)
	invoiceRepo := repository.NewInvoiceRepository(db, logger)

	dir := t.TempDir()
	documentDir := filepath.Join(dir, "documents")
	pdf := render.NewPDFRenderer(logger)
	invoiceComposer := invoicedoc.NewComposer(invoicedoc.Config{CurrencySymbol: "R"})

	sender := email.NewSender(config.EmailConfig{Enabled: false}, logger)
	contracts := service.NewContractService(
		contractRepo,
		projectRepo,
		contractdoc.NewComposer(contractdoc.Config{
			IssuerName:     "Calvin Tech Solutions",
			CurrencySymbol: "R",
			GoverningLaw:   "South Africa",
		}),
		pdf,
		signedcopy.NewVerifier(logger),
		sender,
		documentDir,
		filepath.Join(dir, "uploads"),
		logger,
	)
	invoices := service.NewInvoiceService(invoiceRepo, projectRepo, invoiceComposer, pdf, sender, documentDir, logger)
	statements := service.NewStatementService(
		projectRepo, contractRepo, invoiceRepo,
		invoiceComposer, pdf,
		export.NewStatementWriter("Calvin Tech Solutions", logger),
		documentDir, logger,
	)

	return NewServer(
		ServerConfig{Host: "127.0.0.1", Port: 0, ReadTimeout: time.Second, WriteTimeout: time.Second},
		service.NewProjectService(projectRepo, logger),
		contracts,
		invoices,
		statements,
		logger,
	)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Error   string                 `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	return resp.Data
}

func createProject(t *testing.T, s *Server) int64 {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/projects", map[string]interface{}{
		"name":         "Inventory Portal",
		"client_name":  "Acme Retail",
		"client_email": "billing@acme.example",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeData(t, w)["id"].(float64))
}

func TestHealthCheck(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Inventory Portal", decodeData(t, w)["name"])

	w = doJSON(t, s, http.MethodPut, "/api/projects/1", map[string]interface{}{
		"name":   "Inventory Portal v2",
		"status": "active",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodDelete, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/projects/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateContract(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/projects/1/contracts", map[string]interface{}{
		"totalCost":         10000,
		"upfrontPercentage": 40,
		"installmentCount":  3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(t, w)
	sched := data["payment_schedule"].(map[string]interface{})
	upfront := sched["upfront"].(map[string]interface{})
	assert.Equal(t, 4000.0, upfront["amount"])
	assert.NotEmpty(t, data["contract_number"])
}

func TestCreateContract_MissingTotalCost(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/projects/1/contracts", map[string]interface{}{
		"title": "No cost",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "totalCost")
}

func TestCreateContract_UnknownProject(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/projects/42/contracts", map[string]interface{}{
		"totalCost": 100,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContractDocumentAndPDF(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/projects/1/contracts", map[string]interface{}{
		"totalCost":         10000,
		"upfrontPercentage": 40,
		"installmentCount":  3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/contracts/1/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DEVELOPMENT SERVICES AGREEMENT")
	assert.Contains(t, w.Body.String(), "Payment Terms")

	w = doJSON(t, s, http.MethodGet, "/api/contracts/1/document?format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2. Payment Terms")
	assert.Contains(t, w.Body.String(), "Upfront Payment: 40% of R 10000.00")

	w = doJSON(t, s, http.MethodGet, "/api/contracts/1/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// Email is disabled in the test config, so sends succeed as no-ops.
	w = doJSON(t, s, http.MethodPost, "/api/contracts/1/send", map[string]interface{}{
		"to": "jane@acme.example",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodPost, "/api/contracts/1/send", map[string]interface{}{
		"to": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceLifecycle(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/projects/1/invoices", map[string]interface{}{
		"items": []map[string]interface{}{
			{"description": "Design sprint", "quantity": 2, "price": 1500},
		},
		"paymentTerms": "Payable within 30 days.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 3000.0, decodeData(t, w)["total_amount"])

	w = doJSON(t, s, http.MethodPut, "/api/invoices/1", map[string]interface{}{
		"items": []map[string]interface{}{
			{"description": "Design sprint", "quantity": 2, "price": 1500},
		},
		"status": "paid",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Paying the final invoice marks the project completed.
	w = doJSON(t, s, http.MethodGet, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decodeData(t, w)["status"])
}

func TestStatementEndpoints(t *testing.T) {
	s := testServer(t)
	createProject(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/projects/1/invoices", map[string]interface{}{
		"items":  []map[string]interface{}{{"description": "Build", "quantity": 1, "price": 5000}},
		"status": "paid",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/projects/1/statement", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(t, s, http.MethodGet, "/api/projects/1/statement?from=bad-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
