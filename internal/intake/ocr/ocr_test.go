package ocr_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"family-calendar/internal/intake/ocr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTesseract(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestTesseractExtract(t *testing.T) {
	bin := fakeTesseract(t, `cat >/dev/null
echo "  Elternabend 3. März um 19 Uhr  "
`)
	extractor := ocr.NewTesseract(bin, "deu", 5*time.Second)

	text, err := extractor.Extract(context.Background(), strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "Elternabend 3. März um 19 Uhr", text)
}

func TestTesseractPassesLanguage(t *testing.T) {
	bin := fakeTesseract(t, `cat >/dev/null
echo "$@"
`)
	text, err := ocr.NewTesseract(bin, "", 0).Extract(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "stdin stdout -l deu", text)
}

func TestTesseractFailure(t *testing.T) {
	bin := fakeTesseract(t, `cat >/dev/null
echo "Error in pixReadStream" >&2
exit 1
`)
	_, err := ocr.NewTesseract(bin, "deu", 5*time.Second).Extract(context.Background(), strings.NewReader("kaputt"))
	require.Error(t, err)
	assert.True(t, ocr.IsExtractionFailure(err))
	assert.Contains(t, err.Error(), "pixReadStream")
}

func TestTesseractMissingBinary(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := ocr.NewTesseract(bin, "deu", time.Second).Extract(context.Background(), strings.NewReader(""))
	assert.True(t, ocr.IsExtractionFailure(err))
}
