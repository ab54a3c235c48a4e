package barcodes

import (
	"time"

	"vet-medication-reference/internal/domain/medications"
)

// Symbology es el estándar de codificación del barcode.
type Symbology string

const (
	SymbologyEAN13      Symbology = "EAN-13"
	SymbologyUPC        Symbology = "UPC"
	SymbologyCode128    Symbology = "Code128"
	SymbologyDataMatrix Symbology = "DataMatrix"
)

const DefaultSymbology = SymbologyEAN13

// Mapping asocia un barcode (único en todo el catálogo) a un medicamento.
type Mapping struct {
	ID           string
	MedicationID string

	Barcode string
	Type    Symbology

	// Campos de farmacia, opcionales
	PZN         string
	PackageSize string
	BatchNumber string
	ExpiryDate  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScanResult: el mapping encontrado junto al medicamento que identifica.
type ScanResult struct {
	Mapping    Mapping
	Medication medications.Medication
	ScannedAt  time.Time
}

type ListFilter struct {
	MedicationID string
	Type         Symbology
	Page         int
	Limit        int
}

type TypeCount struct {
	Type  Symbology
	Count int
}

type Statistics struct {
	TotalBarcodes              int
	ByType                     []TypeCount
	MedicationsWithBarcodes    int
	MedicationsWithoutBarcodes int
}
