package licenses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"license-backend/internal/extract"
	"license-backend/internal/shared/metrics"
	"license-backend/internal/shared/storage/object"
	"license-backend/internal/shared/telemetry"
	"license-backend/internal/shared/util"
)

// Service contains business logic for license documents.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Parser *Parser

	// Extract turns PDF bytes into text. Defaults to extract.Text.
	Extract func([]byte) (string, error)
}

// Upload runs the ingestion pipeline: extract text, parse fields, persist
// the raw blob and the structured record. Extraction and parse failures
// surface to the caller without any persistence; the record is saved whole
// or not at all.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (License, error) {
	if fileName == "" {
		return License{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return License{}, fmt.Errorf("read upload: %w", err)
	}

	text, err := s.extractText(data)
	if err != nil {
		metrics.IncUploadsFailed()
		return License{}, err
	}

	fields := s.parser().Parse(text)

	storageKey, size, _, err := s.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		metrics.IncUploadsFailed()
		return License{}, fmt.Errorf("save blob: %w", err)
	}

	extractedKey := storageKey + ".extracted.txt"
	if saver, ok := s.Store.(object.KeySaver); ok {
		if _, err := saver.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
			metrics.IncUploadsFailed()
			return License{}, fmt.Errorf("save extracted text: %w", err)
		}
	} else {
		extractedKey = ""
	}

	lic := License{
		ID:               uuid.NewString(),
		FileName:         fileName,
		SizeBytes:        size,
		StorageKey:       storageKey,
		ExtractedTextKey: extractedKey,
		Checksum:         util.HashBytes(data),
		ProtocolNumber:   fields.ProtocolNumber,
		DocumentNumber:   fields.DocumentNumber,
		TaxID:            fields.TaxID,
		CorporateName:    fields.CorporateName,
		SpecificActivity: fields.SpecificActivity,
		ExpirationDate:   ParseExpiration(fields.Validity),
		Conditions:       fields.Conditions,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, lic); err != nil {
		metrics.IncUploadsFailed()
		return License{}, fmt.Errorf("save license: %w", err)
	}

	metrics.IncUploadsParsed()
	telemetry.Info("license.created", map[string]any{
		"document_id": lic.ID,
		"file_name":   lic.FileName,
		"fields":      fields.String(),
	})

	return lic, nil
}

// Get returns a license record by ID.
func (s *Service) Get(ctx context.Context, id string) (License, error) {
	if id == "" {
		return License{}, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns license records, optionally filtered by a substring match
// on the specific activity field.
func (s *Service) List(ctx context.Context, activity string) ([]License, error) {
	return s.Repo.List(ctx, activity)
}

func (s *Service) extractText(data []byte) (string, error) {
	if s.Extract != nil {
		return s.Extract(data)
	}
	return extract.Text(data)
}

func (s *Service) parser() *Parser {
	if s.Parser != nil {
		return s.Parser
	}
	return NewParser(0)
}
