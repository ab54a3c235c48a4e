package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
)

const medicationColumns = `
	id, name, active_ingredient,
	strength, dosage_amount, dosage_unit,
	category, form, manufacturer,
	description, side_effects, contraindications, interactions, storage,
	prescription_required, dosage_instructions,
	created_at, updated_at`

const medicationSearchClause = `(name ILIKE $1 OR active_ingredient ILIKE $1 OR manufacturer ILIKE $1)`

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	instructions, err := marshalInstructions(m.DosageInstructions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		m.ID,
		m.Name,
		m.ActiveIngredient,
		m.Strength,
		m.DosageAmount,
		string(m.DosageUnit),
		string(m.Category),
		string(m.Form),
		m.Manufacturer,
		m.Description,
		m.SideEffects,
		m.Contraindications,
		m.Interactions,
		m.Storage,
		m.PrescriptionRequired,
		instructions,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError(err)
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	instructions, err := marshalInstructions(m.DosageInstructions)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			active_ingredient = $3,
			strength = $4,
			dosage_amount = $5,
			dosage_unit = $6,
			category = $7,
			form = $8,
			manufacturer = $9,
			description = $10,
			side_effects = $11,
			contraindications = $12,
			interactions = $13,
			storage = $14,
			prescription_required = $15,
			dosage_instructions = $16,
			updated_at = $17
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.ActiveIngredient,
		m.Strength,
		m.DosageAmount,
		string(m.DosageUnit),
		string(m.Category),
		string(m.Form),
		m.Manufacturer,
		m.Description,
		m.SideEffects,
		m.Contraindications,
		m.Interactions,
		m.Storage,
		m.PrescriptionRequired,
		instructions,
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

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return medications.Medication{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if err != nil {
		return medications.Medication{}, mapError(err)
	}
	return m, nil
}

func (r *MedicationsRepo) List(ctx context.Context, f medications.ListFilter) ([]medications.Medication, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = "WHERE " + medicationSearchClause
		args = append(args, likePattern(f.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medications `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, f.Limit, offset(f.Page, f.Limit))
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications `+where+`
		ORDER BY name ASC, id ASC
		LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectMedications(rows)
	return items, total, err
}

func (r *MedicationsRepo) Search(ctx context.Context, q string, limit int) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE `+medicationSearchClause+`
		ORDER BY name ASC, id ASC
		LIMIT $2
	`, likePattern(q), limit)
	if err != nil {
		return nil, err
	}
	return collectMedications(rows)
}

func (r *MedicationsRepo) ListByForm(ctx context.Context, form medications.Form) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE form = $1
		ORDER BY name ASC, id ASC
	`, string(form))
	if err != nil {
		return nil, err
	}
	return collectMedications(rows)
}

func (r *MedicationsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medications`).Scan(&n)
	return n, err
}

func (r *MedicationsRepo) CountByForm(ctx context.Context) ([]medications.FormCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT form, COUNT(*)
		FROM medications
		WHERE form <> ''
		GROUP BY form
		ORDER BY COUNT(*) DESC, form ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.FormCount, 0)
	for rows.Next() {
		var fc medications.FormCount
		var form string
		if err := rows.Scan(&form, &fc.Count); err != nil {
			return nil, err
		}
		fc.Form = medications.Form(form)
		out = append(out, fc)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) CountByPrescription(ctx context.Context) ([]medications.PrescriptionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT prescription_required, COUNT(*)
		FROM medications
		GROUP BY prescription_required
		ORDER BY prescription_required DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.PrescriptionCount, 0, 2)
	for rows.Next() {
		var pc medications.PrescriptionCount
		if err := rows.Scan(&pc.PrescriptionRequired, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func scanMedication(s rowScanner) (medications.Medication, error) {
	var (
		m                    medications.Medication
		unit, category, form string
		instructions         []byte
	)
	if err := s.Scan(
		&m.ID,
		&m.Name,
		&m.ActiveIngredient,
		&m.Strength,
		&m.DosageAmount,
		&unit,
		&category,
		&form,
		&m.Manufacturer,
		&m.Description,
		&m.SideEffects,
		&m.Contraindications,
		&m.Interactions,
		&m.Storage,
		&m.PrescriptionRequired,
		&instructions,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	m.DosageUnit = medications.DosageUnit(unit)
	m.Category = medications.Category(category)
	m.Form = medications.Form(form)

	m.DosageInstructions = []string{}
	if len(instructions) > 0 {
		if err := json.Unmarshal(instructions, &m.DosageInstructions); err != nil {
			return medications.Medication{}, err
		}
	}
	return m, nil
}

func collectMedications(rows *sql.Rows) ([]medications.Medication, error) {
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// jsonb: nunca null, como mínimo "[]".
func marshalInstructions(in []string) (string, error) {
	if in == nil {
		in = []string{}
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
