package dosage

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PediatricSchedule: la dosis única pediátrica asume siempre tres tomas por
// día, independientemente de la frecuencia que use Compute.
const PediatricSchedule = 3

const PediatricUnit = "mg/kg"

type PediatricRule struct {
	DosePerKg     decimal.Decimal
	MaxDailyPerKg decimal.Decimal
	Unit          string
}

// Tabla de referencia ilustrativa, no validada clínicamente. Solo se lee vía
// LookupPediatric; nadie la modifica después del init del paquete.
var pediatricTable = map[string]PediatricRule{
	"paracetamol": {DosePerKg: decimal.NewFromInt(15), MaxDailyPerKg: decimal.NewFromInt(60), Unit: PediatricUnit},
	"ibuprofen":   {DosePerKg: decimal.NewFromInt(10), MaxDailyPerKg: decimal.NewFromInt(40), Unit: PediatricUnit},
	"amoxicillin": {DosePerKg: decimal.NewFromInt(25), MaxDailyPerKg: decimal.NewFromInt(100), Unit: PediatricUnit},
}

// LookupPediatric busca por principio activo normalizado (trim + lower).
func LookupPediatric(activeIngredient string) (PediatricRule, bool) {
	r, ok := pediatricTable[strings.ToLower(strings.TrimSpace(activeIngredient))]
	return r, ok
}

type PediatricRecommendation struct {
	MedicationID   string
	MedicationName string
	PatientWeight  decimal.Decimal
	PatientAge     int // meses

	RecommendedDose decimal.Decimal
	MaxDailyDose    decimal.Decimal
	Unit            string

	CalculatedSingleDose decimal.Decimal
	CalculatedDailyDose  decimal.Decimal
}

func (r PediatricRule) apply(weight decimal.Decimal) (single, daily decimal.Decimal) {
	daily = weight.Mul(r.DosePerKg)
	single = daily.Div(decimal.NewFromInt(PediatricSchedule))
	return single.Round(Precision), daily.Round(Precision)
}
