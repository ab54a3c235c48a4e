package barcodes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-medication-reference/internal/platform/apperr"
)

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		name  string
		code  string
		sym   Symbology
		valid bool
	}{
		{"ean13 ok", "1234567890123", SymbologyEAN13, true},
		{"ean13 short", "123", SymbologyEAN13, false},
		{"ean13 letters", "12345678901ab", SymbologyEAN13, false},
		{"ean13 with 12", "123456789012", SymbologyEAN13, false},
		{"upc ok", "123456789012", SymbologyUPC, true},
		{"upc with 13", "1234567890123", SymbologyUPC, false},
		{"code128 ok", "VET-AMOX 250", SymbologyCode128, true},
		{"code128 80", strings.Repeat("x", 80), SymbologyCode128, true},
		{"code128 81", strings.Repeat("x", 81), SymbologyCode128, false},
		{"code128 empty", "", SymbologyCode128, false},
		{"datamatrix max", strings.Repeat("a", 3116), SymbologyDataMatrix, true},
		{"datamatrix too long", strings.Repeat("a", 3117), SymbologyDataMatrix, false},
		// 80 runes de 2 bytes: se cuenta en caracteres
		{"code128 multibyte", strings.Repeat("ñ", 80), SymbologyCode128, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFormat(tc.code, tc.sym)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.sym, fe.Symbology)
			assert.Contains(t, err.Error(), string(tc.sym))
		})
	}
}

func TestValidateFormat_UnknownSymbology(t *testing.T) {
	err := ValidateFormat("1234567890123", Symbology("QR"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSymbology))
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrInvalidFormat))
}

func TestValidateFormat_IsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.NoError(t, ValidateFormat("1234567890123", SymbologyEAN13))
		assert.Error(t, ValidateFormat("123", SymbologyEAN13))
	}
}
