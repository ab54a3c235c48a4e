package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-medication-reference/internal/domain/dosage"
	"vet-medication-reference/internal/platform/apperr"
)

const calculationColumns = `
	id, medication_id,
	patient_weight, patient_age, indication,
	dose_per_kg, max_daily_dose, frequency,
	calculated_dose, unit, calculated_by, notes,
	created_at`

type CalculationsRepo struct {
	db *sql.DB
}

func NewCalculationsRepo(db *sql.DB) *CalculationsRepo {
	return &CalculationsRepo{db: db}
}

func (r *CalculationsRepo) Create(ctx context.Context, c dosage.Calculation) error {
	var age sql.NullInt64
	if c.PatientAge != nil {
		age = sql.NullInt64{Int64: int64(*c.PatientAge), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dosage_calculations (`+calculationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		c.ID,
		c.MedicationID,
		c.PatientWeight,
		age,
		c.Indication,
		c.DosePerKg,
		c.MaxDailyDose,
		c.Frequency,
		c.CalculatedDose,
		c.Unit,
		c.CalculatedBy,
		c.Notes,
		c.CreatedAt,
	)
	return mapError(err)
}

func (r *CalculationsRepo) GetByID(ctx context.Context, id string) (dosage.Calculation, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return dosage.Calculation{}, apperr.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+calculationColumns+` FROM dosage_calculations WHERE id = $1`, id)
	c, err := scanCalculation(row)
	if err != nil {
		return dosage.Calculation{}, mapError(err)
	}
	return c, nil
}

func (r *CalculationsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM dosage_calculations WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CalculationsRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	if !validID(medicationID) {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM dosage_calculations WHERE medication_id = $1`, medicationID)
	return mapError(err)
}

func (r *CalculationsRepo) ListByMedication(ctx context.Context, medicationID string) ([]dosage.Calculation, error) {
	if !validID(medicationID) {
		return []dosage.Calculation{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+calculationColumns+`
		FROM dosage_calculations
		WHERE medication_id = $1
		ORDER BY created_at DESC, id ASC
	`, medicationID)
	if err != nil {
		return nil, err
	}
	return collectCalculations(rows)
}

func (r *CalculationsRepo) List(ctx context.Context, f dosage.ListFilter) ([]dosage.Calculation, int, error) {
	where := ""
	args := []any{}
	if f.MedicationID != "" {
		if !validID(f.MedicationID) {
			return []dosage.Calculation{}, 0, nil
		}
		where = "WHERE medication_id = $1"
		args = append(args, f.MedicationID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dosage_calculations `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, f.Limit, offset(f.Page, f.Limit))
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+calculationColumns+`
		FROM dosage_calculations `+where+`
		ORDER BY created_at DESC, id ASC
		LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectCalculations(rows)
	return items, total, err
}

func (r *CalculationsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dosage_calculations`).Scan(&n)
	return n, err
}

func (r *CalculationsRepo) TopIndications(ctx context.Context, limit int) ([]dosage.IndicationCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT indication, COUNT(*)
		FROM dosage_calculations
		GROUP BY indication
		ORDER BY COUNT(*) DESC, indication ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dosage.IndicationCount, 0)
	for rows.Next() {
		var ic dosage.IndicationCount
		if err := rows.Scan(&ic.Indication, &ic.Count); err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}

func (r *CalculationsRepo) AveragesByIndication(ctx context.Context) ([]dosage.IndicationAverage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT indication,
			ROUND(AVG(calculated_dose), 4),
			ROUND(AVG(patient_weight), 4)
		FROM dosage_calculations
		GROUP BY indication
		ORDER BY indication ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dosage.IndicationAverage, 0)
	for rows.Next() {
		var a dosage.IndicationAverage
		if err := rows.Scan(&a.Indication, &a.AvgDose, &a.AvgWeight); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanCalculation(s rowScanner) (dosage.Calculation, error) {
	var (
		c   dosage.Calculation
		age sql.NullInt64
	)
	if err := s.Scan(
		&c.ID,
		&c.MedicationID,
		&c.PatientWeight,
		&age,
		&c.Indication,
		&c.DosePerKg,
		&c.MaxDailyDose,
		&c.Frequency,
		&c.CalculatedDose,
		&c.Unit,
		&c.CalculatedBy,
		&c.Notes,
		&c.CreatedAt,
	); err != nil {
		return dosage.Calculation{}, err
	}
	if age.Valid {
		v := int(age.Int64)
		c.PatientAge = &v
	}
	return c, nil
}

func collectCalculations(rows *sql.Rows) ([]dosage.Calculation, error) {
	defer rows.Close()

	out := make([]dosage.Calculation, 0)
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
