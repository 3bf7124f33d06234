// Package ocr extracts text from photographed appointment notes.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Extractor returns the text found in an image. Empty text is not an error.
type Extractor interface {
	Extract(ctx context.Context, image io.Reader) (string, error)
}

// ExtractionFailure is reported to the user as a warning; intake continues
// with default values.
type ExtractionFailure struct {
	Reason string
	Err    error
}

func (e *ExtractionFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text recognition failed: %s: %v", e.Reason, e.Err)
	}
	return "text recognition failed: " + e.Reason
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

func IsExtractionFailure(err error) bool {
	var failure *ExtractionFailure
	return errors.As(err, &failure)
}

// Tesseract runs the tesseract command line tool, image on stdin and text on
// stdout.
type Tesseract struct {
	Binary   string
	Language string
	Timeout  time.Duration
}

func NewTesseract(binary, language string, timeout time.Duration) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "deu"
	}
	return &Tesseract{Binary: binary, Language: language, Timeout: timeout}
}

func (t *Tesseract) Extract(ctx context.Context, image io.Reader) (string, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Binary, "stdin", "stdout", "-l", t.Language)
	cmd.Stdin = image
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &ExtractionFailure{Reason: "tesseract not installed", Err: err}
		}
		if ctx.Err() != nil {
			return "", &ExtractionFailure{Reason: "timed out", Err: ctx.Err()}
		}
		return "", &ExtractionFailure{Reason: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}
