package dosage

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-medication-reference/internal/platform/apperr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ceiling(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d(s), Valid: true}
}

func TestCompute_NoCeiling(t *testing.T) {
	rec, err := Compute(DoseInput{Weight: d("10"), DosePerKg: d("5"), Frequency: 2}, "")
	require.NoError(t, err)

	assert.True(t, rec.SingleDose.Equal(d("25")), "single=%s", rec.SingleDose)
	assert.True(t, rec.DailyDose.Equal(d("50")))
	assert.True(t, rec.TotalDailyDose.Equal(d("50")))
	assert.Equal(t, 2, rec.Frequency)
	assert.Equal(t, DefaultUnit, rec.Unit)
	assert.Nil(t, rec.Warning)
	assert.False(t, rec.Clamped())
}

func TestCompute_CeilingApplied(t *testing.T) {
	rec, err := Compute(DoseInput{
		Weight:       d("20"),
		DosePerKg:    d("10"),
		Frequency:    2,
		MaxDailyDose: ceiling("150"),
	}, "ml")
	require.NoError(t, err)

	assert.True(t, rec.TotalDailyDose.Equal(d("200")))
	assert.True(t, rec.DailyDose.Equal(d("150")))
	assert.True(t, rec.SingleDose.Equal(d("75")))
	assert.Equal(t, "ml", rec.Unit)
	require.NotNil(t, rec.Warning)
	assert.Equal(t, CeilingWarning, *rec.Warning)
}

func TestCompute_CeilingNotReached(t *testing.T) {
	rec, err := Compute(DoseInput{
		Weight:       d("4"),
		DosePerKg:    d("10"),
		Frequency:    4,
		MaxDailyDose: ceiling("40"),
	}, "")
	require.NoError(t, err)

	// total == techo: no se recorta
	assert.Nil(t, rec.Warning)
	assert.True(t, rec.DailyDose.Equal(d("40")))
	assert.True(t, rec.SingleDose.Equal(d("10")))
}

func TestCompute_ZeroCeilingIsACeiling(t *testing.T) {
	rec, err := Compute(DoseInput{
		Weight:       d("3"),
		DosePerKg:    d("2"),
		Frequency:    3,
		MaxDailyDose: ceiling("0"),
	}, "")
	require.NoError(t, err)

	assert.True(t, rec.DailyDose.IsZero())
	assert.True(t, rec.SingleDose.IsZero())
	assert.True(t, rec.TotalDailyDose.Equal(d("6")))
	assert.NotNil(t, rec.Warning)
}

func TestCompute_RoundsToPrecision(t *testing.T) {
	rec, err := Compute(DoseInput{Weight: d("10"), DosePerKg: d("1"), Frequency: 3}, "")
	require.NoError(t, err)
	assert.Equal(t, "3.3333", rec.SingleDose.String())
}

func TestCompute_Properties(t *testing.T) {
	cases := []DoseInput{
		{Weight: d("0.5"), DosePerKg: d("12.5"), Frequency: 1},
		{Weight: d("33.2"), DosePerKg: d("7"), Frequency: 3, MaxDailyDose: ceiling("100")},
		{Weight: d("8"), DosePerKg: d("0"), Frequency: 2, MaxDailyDose: ceiling("10")},
		{Weight: d("60"), DosePerKg: d("2.25"), Frequency: 4, MaxDailyDose: ceiling("500")},
	}

	for _, in := range cases {
		rec, err := Compute(in, "")
		require.NoError(t, err)

		assert.True(t, rec.TotalDailyDose.Equal(in.Weight.Mul(in.DosePerKg).Round(Precision)))
		assert.True(t, rec.DailyDose.LessThanOrEqual(rec.TotalDailyDose))
		if in.MaxDailyDose.Valid {
			assert.True(t, rec.DailyDose.LessThanOrEqual(in.MaxDailyDose.Decimal))
		}
		assert.Equal(t, rec.Warning != nil, rec.DailyDose.LessThan(rec.TotalDailyDose))

		freq := decimal.NewFromInt(int64(in.Frequency))
		assert.True(t, rec.SingleDose.Equal(rec.DailyDose.Div(freq).Round(Precision)),
			"single=%s daily=%s freq=%d", rec.SingleDose, rec.DailyDose, in.Frequency)
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	cases := map[string]DoseInput{
		"zero weight":      {Weight: d("0"), DosePerKg: d("5"), Frequency: 1},
		"negative weight":  {Weight: d("-1"), DosePerKg: d("5"), Frequency: 1},
		"negative dose":    {Weight: d("1"), DosePerKg: d("-5"), Frequency: 1},
		"zero frequency":   {Weight: d("1"), DosePerKg: d("5"), Frequency: 0},
		"negative ceiling": {Weight: d("1"), DosePerKg: d("5"), Frequency: 1, MaxDailyDose: ceiling("-1")},
		"weight too large": {Weight: d("100000000"), DosePerKg: d("0"), Frequency: 1},
		"dose too large":   {Weight: d("1"), DosePerKg: d("100000000"), Frequency: 1},
		"ceiling too large": {
			Weight: d("1"), DosePerKg: d("1"), Frequency: 1, MaxDailyDose: ceiling("100000000"),
		},
		"weight scale":  {Weight: d("2.12345"), DosePerKg: d("5"), Frequency: 1},
		"dose scale":    {Weight: d("2"), DosePerKg: d("0.00001"), Frequency: 1},
		"ceiling scale": {Weight: d("2"), DosePerKg: d("5"), Frequency: 1, MaxDailyDose: ceiling("9.99999")},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Compute(in, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
		})
	}
}

func TestCompute_ResultMustFitColumn(t *testing.T) {
	// Cada entrada es válida, pero el producto no entra en numeric(12,4).
	_, err := Compute(DoseInput{Weight: d("10000"), DosePerKg: d("10000"), Frequency: 1}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	// Con techo, lo que se guarda es la dosis recortada.
	rec, err := Compute(DoseInput{
		Weight:       d("10000"),
		DosePerKg:    d("10000"),
		Frequency:    1,
		MaxDailyDose: ceiling("500"),
	}, "")
	require.NoError(t, err)
	assert.True(t, rec.DailyDose.Equal(d("500")))
	assert.True(t, rec.TotalDailyDose.Equal(d("100000000")))
}

func TestCompute_AcceptsStorableEdges(t *testing.T) {
	rec, err := Compute(DoseInput{Weight: d("99999999.9999"), DosePerKg: d("0"), Frequency: 1}, "")
	require.NoError(t, err)
	assert.True(t, rec.SingleDose.IsZero())

	// ceros a la derecha no cuentan como decimales extra
	_, err = Compute(DoseInput{Weight: d("2.500000"), DosePerKg: d("1.1000"), Frequency: 1}, "")
	require.NoError(t, err)
}

func TestLookupPediatric(t *testing.T) {
	r, ok := LookupPediatric("  Amoxicillin ")
	require.True(t, ok)
	assert.True(t, r.DosePerKg.Equal(d("25")))
	assert.True(t, r.MaxDailyPerKg.Equal(d("100")))
	assert.Equal(t, PediatricUnit, r.Unit)

	_, ok = LookupPediatric("ivermectin")
	assert.False(t, ok)
}

func TestPediatricRule_Apply(t *testing.T) {
	r, _ := LookupPediatric("paracetamol")

	single, daily := r.apply(d("12"))
	assert.True(t, daily.Equal(d("180")))
	assert.True(t, single.Equal(d("60")))
}
