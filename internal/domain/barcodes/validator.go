package barcodes

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"vet-medication-reference/internal/platform/apperr"
)

var (
	ErrUnknownSymbology = apperr.Invalid("unknown barcode type")
	ErrInvalidFormat    = errors.New("invalid barcode format")
)

// FormatError indica que el barcode no cumple las reglas de su simbología.
// Matchea tanto ErrInvalidFormat como apperr.ErrInvalidArgument.
type FormatError struct {
	Symbology Symbology
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s barcode", e.Symbology)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrInvalidFormat, apperr.ErrInvalidArgument}
}

type rule func(code string) bool

var rules = map[Symbology]rule{
	SymbologyEAN13:      digits(13),
	SymbologyUPC:        digits(12),
	SymbologyCode128:    length(1, 80),
	SymbologyDataMatrix: length(1, 3116),
}

func (s Symbology) Valid() bool {
	_, ok := rules[s]
	return ok
}

// ValidateFormat no toca ningún catálogo.
func ValidateFormat(barcode string, s Symbology) error {
	r, ok := rules[s]
	if !ok {
		return ErrUnknownSymbology
	}
	if !r(barcode) {
		return &FormatError{Symbology: s}
	}
	return nil
}

func digits(n int) rule {
	return func(code string) bool {
		if len(code) != n {
			return false
		}
		for i := 0; i < len(code); i++ {
			if code[i] < '0' || code[i] > '9' {
				return false
			}
		}
		return true
	}
}

// Longitud en caracteres, no en bytes.
func length(min, max int) rule {
	return func(code string) bool {
		n := utf8.RuneCountInString(code)
		return n >= min && n <= max
	}
}
