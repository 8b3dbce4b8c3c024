package extract

import (
	"errors"
	"testing"
)

func TestTextEmptyPayload(t *testing.T) {
	_, err := Text(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = Text([]byte{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty slice, got %v", err)
	}
}

func TestTextNotAPDF(t *testing.T) {
	_, err := Text([]byte("plain text, not a pdf"))
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestTextTruncatedPDF(t *testing.T) {
	// A valid header with a truncated body must fail with ErrExtraction
	// rather than panicking or returning partial garbage silently.
	_, err := Text([]byte("%PDF-1.4\n1 0 obj\n<<"))
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}
