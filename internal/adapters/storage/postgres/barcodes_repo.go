package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"vet-medication-reference/internal/domain/barcodes"
	"vet-medication-reference/internal/platform/apperr"
)

const barcodeColumns = `
	id, medication_id,
	barcode, barcode_type,
	pzn, package_size, batch_number, expiry_date,
	created_at, updated_at`

// La unicidad la garantiza barcode_mappings_barcode_key; un 23505 en
// Create/Update sale como apperr.ErrConflict vía mapError.
type BarcodesRepo struct {
	db *sql.DB
}

func NewBarcodesRepo(db *sql.DB) *BarcodesRepo {
	return &BarcodesRepo{db: db}
}

func (r *BarcodesRepo) Create(ctx context.Context, m barcodes.Mapping) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO barcode_mappings (`+barcodeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		m.ID,
		m.MedicationID,
		m.Barcode,
		string(m.Type),
		m.PZN,
		m.PackageSize,
		m.BatchNumber,
		toNullDate(m.ExpiryDate),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError(err)
}

func (r *BarcodesRepo) Update(ctx context.Context, m barcodes.Mapping) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE barcode_mappings
		SET
			medication_id = $2,
			barcode = $3,
			barcode_type = $4,
			pzn = $5,
			package_size = $6,
			batch_number = $7,
			expiry_date = $8,
			updated_at = $9
		WHERE id = $1
	`,
		m.ID,
		m.MedicationID,
		m.Barcode,
		string(m.Type),
		m.PZN,
		m.PackageSize,
		m.BatchNumber,
		toNullDate(m.ExpiryDate),
		m.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BarcodesRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM barcode_mappings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BarcodesRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	if !validID(medicationID) {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM barcode_mappings WHERE medication_id = $1`, medicationID)
	return mapError(err)
}

func (r *BarcodesRepo) GetByID(ctx context.Context, id string) (barcodes.Mapping, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return barcodes.Mapping{}, apperr.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+barcodeColumns+` FROM barcode_mappings WHERE id = $1`, id)
	m, err := scanMapping(row)
	if err != nil {
		return barcodes.Mapping{}, mapError(err)
	}
	return m, nil
}

func (r *BarcodesRepo) FindByBarcode(ctx context.Context, code string) (barcodes.Mapping, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+barcodeColumns+` FROM barcode_mappings WHERE barcode = $1`, code)
	m, err := scanMapping(row)
	if err != nil {
		return barcodes.Mapping{}, mapError(err)
	}
	return m, nil
}

func (r *BarcodesRepo) ListByMedication(ctx context.Context, medicationID string) ([]barcodes.Mapping, error) {
	if !validID(medicationID) {
		return []barcodes.Mapping{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+barcodeColumns+`
		FROM barcode_mappings
		WHERE medication_id = $1
		ORDER BY created_at DESC, id ASC
	`, medicationID)
	if err != nil {
		return nil, err
	}
	return collectMappings(rows)
}

func (r *BarcodesRepo) List(ctx context.Context, f barcodes.ListFilter) ([]barcodes.Mapping, int, error) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if f.MedicationID != "" {
		if !validID(f.MedicationID) {
			return []barcodes.Mapping{}, 0, nil
		}
		args = append(args, f.MedicationID)
		conds = append(conds, "medication_id = $"+itoa(len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, "barcode_type = $"+itoa(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM barcode_mappings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, f.Limit, offset(f.Page, f.Limit))
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+barcodeColumns+`
		FROM barcode_mappings `+where+`
		ORDER BY created_at DESC, id ASC
		LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectMappings(rows)
	return items, total, err
}

func (r *BarcodesRepo) Search(ctx context.Context, q string, limit int) ([]barcodes.Mapping, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+barcodeColumns+`
		FROM barcode_mappings
		WHERE barcode ILIKE $1 OR pzn ILIKE $1 OR package_size ILIKE $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2
	`, likePattern(q), limit)
	if err != nil {
		return nil, err
	}
	return collectMappings(rows)
}

func (r *BarcodesRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM barcode_mappings`).Scan(&n)
	return n, err
}

func (r *BarcodesRepo) CountByType(ctx context.Context) ([]barcodes.TypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT barcode_type, COUNT(*)
		FROM barcode_mappings
		GROUP BY barcode_type
		ORDER BY COUNT(*) DESC, barcode_type ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]barcodes.TypeCount, 0)
	for rows.Next() {
		var (
			tc  barcodes.TypeCount
			sym string
		)
		if err := rows.Scan(&sym, &tc.Count); err != nil {
			return nil, err
		}
		tc.Type = barcodes.Symbology(sym)
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *BarcodesRepo) CountDistinctMedications(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT medication_id) FROM barcode_mappings`).Scan(&n)
	return n, err
}

func scanMapping(s rowScanner) (barcodes.Mapping, error) {
	var (
		m   barcodes.Mapping
		sym string
		exp sql.NullTime
	)
	if err := s.Scan(
		&m.ID,
		&m.MedicationID,
		&m.Barcode,
		&sym,
		&m.PZN,
		&m.PackageSize,
		&m.BatchNumber,
		&exp,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return barcodes.Mapping{}, err
	}
	m.Type = barcodes.Symbology(sym)
	if exp.Valid {
		// expiry_date es date: pgx lo devuelve como medianoche UTC
		t := exp.Time
		m.ExpiryDate = &t
	}
	return m, nil
}

func collectMappings(rows *sql.Rows) ([]barcodes.Mapping, error) {
	defer rows.Close()

	out := make([]barcodes.Mapping, 0)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
