package signedcopy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerify_MissingFile(t *testing.T) {
	verifier := NewVerifier(zap.NewNop())

	_, err := verifier.Verify(filepath.Join(t.TempDir(), "nope.pdf"), "CT-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVerify_RejectsNonPDF(t *testing.T) {
	verifier := NewVerifier(zap.NewNop())

	path := filepath.Join(t.TempDir(), "contract.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := verifier.Verify(path, "CT-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
