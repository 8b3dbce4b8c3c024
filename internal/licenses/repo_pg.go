package licenses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new license record.
func (r *PGRepo) Create(ctx context.Context, lic License) error {
	const query = `
INSERT INTO licenses (
    id,
    file_name,
    size_bytes,
    storage_key,
    extracted_text_key,
    checksum,
    protocol_number,
    document_number,
    tax_id,
    corporate_name,
    specific_activity,
    expiration_date,
    conditions,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lic.ID,
		lic.FileName,
		lic.SizeBytes,
		nullString(lic.StorageKey),
		nullString(lic.ExtractedTextKey),
		nullString(lic.Checksum),
		lic.ProtocolNumber,
		lic.DocumentNumber,
		lic.TaxID,
		lic.CorporateName,
		lic.SpecificActivity,
		lic.ExpirationDate,
		lic.Conditions,
		lic.CreatedAt,
	)
	return err
}

// GetByID fetches a license record, including its conditions block.
func (r *PGRepo) GetByID(ctx context.Context, id string) (License, error) {
	const query = `
SELECT id, file_name, size_bytes, storage_key, extracted_text_key, checksum,
       protocol_number, document_number, tax_id, corporate_name,
       specific_activity, expiration_date, conditions, created_at
FROM licenses
WHERE id = $1
LIMIT 1`

	var lic License
	var storageKey, extractedKey, checksum sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lic.ID,
		&lic.FileName,
		&lic.SizeBytes,
		&storageKey,
		&extractedKey,
		&checksum,
		&lic.ProtocolNumber,
		&lic.DocumentNumber,
		&lic.TaxID,
		&lic.CorporateName,
		&lic.SpecificActivity,
		&lic.ExpirationDate,
		&lic.Conditions,
		&lic.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return License{}, ErrNotFound
		}
		return License{}, err
	}
	lic.StorageKey = storageKey.String
	lic.ExtractedTextKey = extractedKey.String
	lic.Checksum = checksum.String
	return lic, nil
}

// List returns license records newest-first, optionally filtered by a
// substring match on specific_activity. Conditions are not selected.
func (r *PGRepo) List(ctx context.Context, activity string) ([]License, error) {
	const baseQuery = `
SELECT id, file_name, size_bytes, storage_key, extracted_text_key, checksum,
       protocol_number, document_number, tax_id, corporate_name,
       specific_activity, expiration_date, created_at
FROM licenses`

	var (
		rows *sql.Rows
		err  error
	)
	if activity != "" {
		rows, err = r.DB.QueryContext(ctx,
			baseQuery+`
WHERE specific_activity LIKE '%' || $1 || '%'
ORDER BY created_at DESC`, activity)
	} else {
		rows, err = r.DB.QueryContext(ctx, baseQuery+`
ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []License
	for rows.Next() {
		var lic License
		var storageKey, extractedKey, checksum sql.NullString
		if err := rows.Scan(
			&lic.ID,
			&lic.FileName,
			&lic.SizeBytes,
			&storageKey,
			&extractedKey,
			&checksum,
			&lic.ProtocolNumber,
			&lic.DocumentNumber,
			&lic.TaxID,
			&lic.CorporateName,
			&lic.SpecificActivity,
			&lic.ExpirationDate,
			&lic.CreatedAt,
		); err != nil {
			return nil, err
		}
		lic.StorageKey = storageKey.String
		lic.ExtractedTextKey = extractedKey.String
		lic.Checksum = checksum.String
		out = append(out, lic)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
