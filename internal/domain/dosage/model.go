package dosage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculation es append-only: se crea o se borra, nunca se modifica.
type Calculation struct {
	ID           string
	MedicationID string

	PatientWeight decimal.Decimal // kg
	PatientAge    *int
	Indication    string

	DosePerKg    decimal.Decimal
	MaxDailyDose decimal.NullDecimal
	Frequency    int

	// CalculatedDose lo produce Compute; nunca viene del cliente.
	CalculatedDose decimal.Decimal
	Unit           string

	CalculatedBy string
	Notes        string

	CreatedAt time.Time
}

type Result struct {
	Calculation    Calculation
	Recommendation Recommendation
}

type ListFilter struct {
	MedicationID string
	Page         int
	Limit        int
}

type IndicationCount struct {
	Indication string
	Count      int
}

type IndicationAverage struct {
	Indication string
	AvgDose    decimal.Decimal
	AvgWeight  decimal.Decimal
}

type Statistics struct {
	TotalCalculations int
	TopIndications    []IndicationCount
	AverageDoses      []IndicationAverage
}
