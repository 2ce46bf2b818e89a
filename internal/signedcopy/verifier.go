// Package signedcopy inspects uploaded signed contract PDFs before they are
// accepted into storage.
package signedcopy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Result summarizes what was found inside an uploaded signed copy.
// StoredPath is filled in by the caller once the file has a permanent home.
type Result struct {
	PageCount           int    `json:"page_count"`
	ContractNumberFound bool   `json:"contract_number_found"`
	StoredPath          string `json:"stored_path,omitempty"`
}

// Verifier extracts text from signed contract PDFs and checks the document
// actually belongs to the contract it was uploaded against.
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a signed-copy verifier.
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify scans every page of the PDF at path for the contract number.
// Pages that fail text extraction are skipped; the scan only fails when the
// file itself cannot be opened.
func (v *Verifier) Verify(path, contractNumber string) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("signed copy not found: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	result := &Result{PageCount: doc.NumPage()}

	for page := 0; page < result.PageCount; page++ {
		text, err := doc.Text(page)
		if err != nil {
			v.logger.Warn("Failed to extract page text",
				zap.Int("page", page),
				zap.Error(err))
			continue
		}
		if contractNumber != "" && strings.Contains(text, contractNumber) {
			result.ContractNumberFound = true
			break
		}
	}

	v.logger.Info("Verified signed copy",
		zap.String("path", path),
		zap.Int("pages", result.PageCount),
		zap.Bool("contract_number_found", result.ContractNumberFound))

	return result, nil
}
