package licenses

import "time"

// LicenseResponse is the outward-facing representation of a license record.
// Absent fields serialize as null so callers can distinguish "not found in
// source text" from an empty value.
type LicenseResponse struct {
	ID               string     `json:"id"`
	FileName         string     `json:"fileName"`
	SizeBytes        int64      `json:"sizeBytes"`
	ProtocolNumber   *string    `json:"protocolNumber"`
	DocumentNumber   *string    `json:"documentNumber"`
	TaxID            *string    `json:"taxId"`
	CorporateName    *string    `json:"corporateName"`
	SpecificActivity *string    `json:"specificActivity"`
	ExpirationDate   *time.Time `json:"expirationDate"`
	Conditions       *string    `json:"conditions,omitempty"`
	UploadedAt       time.Time  `json:"uploadedAt"`
}

func toResponse(lic License) LicenseResponse {
	return LicenseResponse{
		ID:               lic.ID,
		FileName:         lic.FileName,
		SizeBytes:        lic.SizeBytes,
		ProtocolNumber:   lic.ProtocolNumber,
		DocumentNumber:   lic.DocumentNumber,
		TaxID:            lic.TaxID,
		CorporateName:    lic.CorporateName,
		SpecificActivity: lic.SpecificActivity,
		ExpirationDate:   lic.ExpirationDate,
		Conditions:       lic.Conditions,
		UploadedAt:       lic.CreatedAt,
	}
}
