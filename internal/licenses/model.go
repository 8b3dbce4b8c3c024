package licenses

import "time"

// License is the structured record extracted from an uploaded permit PDF.
// Field pointers are nil when the pattern was not found in the source text,
// never defaulted to an empty string.
type License struct {
	ID               string
	FileName         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	Checksum         string

	ProtocolNumber   *string
	DocumentNumber   *string
	TaxID            *string
	CorporateName    *string
	SpecificActivity *string
	ExpirationDate   *time.Time
	Conditions       *string

	CreatedAt time.Time
}
