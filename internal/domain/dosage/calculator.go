package dosage

import (
	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/platform/apperr"
)

// Precision es la cantidad de decimales con que se guardan las dosis (numeric(12,4)).
const Precision = 4

const DefaultUnit = "mg"

// MaxStored es el primer valor que ya no entra en numeric(12,4).
var MaxStored = decimal.New(1, 12-Precision)

// CeilingWarning se adjunta cuando la dosis diaria supera el máximo indicado.
const CeilingWarning = "maximum daily dose reached - dose was adjusted"

type DoseInput struct {
	Weight    decimal.Decimal // kg
	DosePerKg decimal.Decimal
	Frequency int // administraciones por día
	// MaxDailyDose inválido (Valid=false) = sin techo. Un 0 válido sí es techo.
	MaxDailyDose decimal.NullDecimal
}

// Recommendation mantiene separados DailyDose (recortada al techo) y
// TotalDailyDose (sin recortar). Ninguna se deriva de la otra.
type Recommendation struct {
	SingleDose     decimal.Decimal
	DailyDose      decimal.Decimal
	TotalDailyDose decimal.Decimal
	Frequency      int
	Unit           string
	Warning        *string
}

func (r Recommendation) Clamped() bool { return r.Warning != nil }

func (in DoseInput) Validate() error {
	if !in.Weight.IsPositive() {
		return apperr.Invalid("patient_weight must be greater than 0")
	}
	if in.DosePerKg.IsNegative() {
		return apperr.Invalid("dose_per_kg must not be negative")
	}
	if in.Frequency < 1 {
		return apperr.Invalid("frequency must be at least 1")
	}
	if in.MaxDailyDose.Valid && in.MaxDailyDose.Decimal.IsNegative() {
		return apperr.Invalid("max_daily_dose must not be negative")
	}
	if err := checkStorable("patient_weight", in.Weight); err != nil {
		return err
	}
	if err := checkStorable("dose_per_kg", in.DosePerKg); err != nil {
		return err
	}
	if in.MaxDailyDose.Valid {
		if err := checkStorable("max_daily_dose", in.MaxDailyDose.Decimal); err != nil {
			return err
		}
	}
	return nil
}

// checkStorable exige que v se guarde tal cual: menor a MaxStored y con a
// lo sumo Precision decimales.
func checkStorable(field string, v decimal.Decimal) error {
	if v.Abs().GreaterThanOrEqual(MaxStored) {
		return apperr.Invalid("%s must be less than %s", field, MaxStored)
	}
	if !v.Equal(v.Round(Precision)) {
		return apperr.Invalid("%s must have at most %d decimal places", field, Precision)
	}
	return nil
}

// Compute es puro: daily = peso × dosis/kg, single = daily / frecuencia, con
// recorte al techo diario si corresponde.
func Compute(in DoseInput, unit string) (Recommendation, error) {
	if err := in.Validate(); err != nil {
		return Recommendation{}, err
	}
	if unit == "" {
		unit = DefaultUnit
	}

	freq := decimal.NewFromInt(int64(in.Frequency))
	total := in.Weight.Mul(in.DosePerKg)

	rec := Recommendation{
		TotalDailyDose: total.Round(Precision),
		DailyDose:      total.Round(Precision),
		SingleDose:     total.Div(freq).Round(Precision),
		Frequency:      in.Frequency,
		Unit:           unit,
	}

	if in.MaxDailyDose.Valid && total.GreaterThan(in.MaxDailyDose.Decimal) {
		ceiling := in.MaxDailyDose.Decimal
		w := CeilingWarning
		rec.DailyDose = ceiling.Round(Precision)
		rec.SingleDose = ceiling.Div(freq).Round(Precision)
		rec.Warning = &w
	}

	if rec.SingleDose.GreaterThanOrEqual(MaxStored) || rec.DailyDose.GreaterThanOrEqual(MaxStored) {
		return Recommendation{}, apperr.Invalid("calculated dose must be less than %s", MaxStored)
	}
	return rec, nil
}
