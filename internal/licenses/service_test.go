package licenses

import (
	"context"
	"errors"
	"strings"
	"testing"

	"license-backend/internal/extract"
	localstore "license-backend/internal/shared/storage/object/local"
)

const sampleText = "PROTOCOLO 12.345.678-9\n" +
	"IDENTIFICAÇÃO DO EMPREENDEDOR\n" +
	"12.345.678/0001-90 - AGRO INDUSTRIA LTDA\n" +
	"VALIDADE DA LICENÇA\n" +
	"31/12/2026\n" +
	"ATIVIDADE ESPECÍFICA\n" +
	"Suinocultura\n"

func newTestService(t *testing.T, extract func([]byte) (string, error)) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := &Service{
		Store:   localstore.New(t.TempDir()),
		Repo:    repo,
		Extract: extract,
	}
	return svc, repo
}

func TestUploadPersistsParsedRecord(t *testing.T) {
	svc, repo := newTestService(t, func([]byte) (string, error) { return sampleText, nil })

	lic, err := svc.Upload(context.Background(), "licenca.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if lic.ID == "" || lic.StorageKey == "" || lic.Checksum == "" {
		t.Fatalf("missing identity fields: %+v", lic)
	}
	if lic.ProtocolNumber == nil || *lic.ProtocolNumber != "12.345.678-9" {
		t.Fatalf("protocol number = %v", lic.ProtocolNumber)
	}
	if lic.TaxID == nil || *lic.TaxID != "12.345.678/0001-90" {
		t.Fatalf("tax id = %v", lic.TaxID)
	}
	if lic.CorporateName == nil || *lic.CorporateName != "AGRO INDUSTRIA LTDA" {
		t.Fatalf("corporate name = %v", lic.CorporateName)
	}
	if lic.ExpirationDate == nil || lic.ExpirationDate.Format("2006-01-02") != "2026-12-31" {
		t.Fatalf("expiration date = %v", lic.ExpirationDate)
	}
	if lic.ExtractedTextKey == "" {
		t.Fatal("extracted text key not set")
	}

	stored, err := repo.GetByID(context.Background(), lic.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FileName != "licenca.pdf" {
		t.Fatalf("stored file name = %q", stored.FileName)
	}
}

func TestUploadSavesRecordWithNoMatches(t *testing.T) {
	svc, _ := newTestService(t, func([]byte) (string, error) { return "texto sem padroes", nil })

	lic, err := svc.Upload(context.Background(), "vazio.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if lic.ProtocolNumber != nil || lic.TaxID != nil || lic.ExpirationDate != nil || lic.Conditions != nil {
		t.Fatalf("expected all parsed fields absent: %+v", lic)
	}
}

func TestUploadExtractionFailureDoesNotPersist(t *testing.T) {
	svc, repo := newTestService(t, func([]byte) (string, error) {
		return "", extract.ErrExtraction
	})

	_, err := svc.Upload(context.Background(), "corrupto.pdf", strings.NewReader("not a pdf"))
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}

	all, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no records, got %d", len(all))
	}
}

func TestUploadRequiresFileName(t *testing.T) {
	svc, _ := newTestService(t, func([]byte) (string, error) { return "", nil })

	_, err := svc.Upload(context.Background(), "", strings.NewReader("data"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetRequiresID(t *testing.T) {
	svc, _ := newTestService(t, nil)

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListFiltersByActivity(t *testing.T) {
	svc, _ := newTestService(t, func(data []byte) (string, error) {
		return string(data), nil
	})

	texts := map[string]string{
		"suino.pdf": "ATIVIDADE ESPECÍFICA\nSuinocultura\n",
		"aves.pdf":  "ATIVIDADE ESPECÍFICA\nAvicultura de corte\n",
	}
	for name, text := range texts {
		if _, err := svc.Upload(context.Background(), name, strings.NewReader(text)); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	got, err := svc.List(context.Background(), "Avicultura")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].FileName != "aves.pdf" {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
}
