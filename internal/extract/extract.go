package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrInvalidInput indicates an empty or missing payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates the payload could not be parsed as a PDF.
	ErrExtraction = errors.New("extraction failed")
)

// Text extracts the plain-text content of a PDF payload, newline-delimited,
// pages in source order. Library used: github.com/ledongthuc/pdf.
// The function is pure: no I/O beyond the supplied bytes, no state.
func Text(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}

	// The pdf reader panics on malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtraction, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var buf strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Row extraction fails on some content streams; fall back to
			// the reader-wide plain text for the whole document.
			return plainText(reader)
		}
		for _, row := range rows {
			var line strings.Builder
			for _, text := range row.Content {
				line.WriteString(text.S)
			}
			if trimmed := strings.TrimSpace(line.String()); trimmed != "" {
				buf.WriteString(trimmed)
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func plainText(reader *pdf.Reader) (string, error) {
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return buf.String(), nil
}
