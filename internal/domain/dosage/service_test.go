package dosage

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID    map[string]Calculation
	creates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Calculation{}}
}

func (r *testRepo) Create(ctx context.Context, c Calculation) error {
	r.creates++
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Calculation, error) {
	c, ok := r.byID[id]
	if !ok {
		return Calculation{}, apperr.ErrNotFound
	}
	return c, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	for id, c := range r.byID {
		if c.MedicationID == medicationID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *testRepo) ListByMedication(ctx context.Context, medicationID string) ([]Calculation, error) {
	out := make([]Calculation, 0)
	for _, c := range r.byID {
		if c.MedicationID == medicationID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Calculation, int, error) {
	all, _ := r.ListByMedication(ctx, f.MedicationID)
	if f.MedicationID == "" {
		all = all[:0]
		for _, c := range r.byID {
			all = append(all, c)
		}
	}
	return all, len(all), nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) { return len(r.byID), nil }

func (r *testRepo) TopIndications(ctx context.Context, limit int) ([]IndicationCount, error) {
	counts := map[string]int{}
	for _, c := range r.byID {
		counts[c.Indication]++
	}
	out := make([]IndicationCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, IndicationCount{Indication: k, Count: v})
	}
	return out, nil
}

func (r *testRepo) AveragesByIndication(ctx context.Context) ([]IndicationAverage, error) {
	return nil, nil
}

type fakeMeds struct {
	byID    map[string]medications.Medication
	lookups int
}

func (f *fakeMeds) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	f.lookups++
	m, ok := f.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func newTestService() (*Service, *testRepo, *fakeMeds) {
	repo := newTestRepo()
	meds := &fakeMeds{byID: map[string]medications.Medication{
		"med-amox": {ID: "med-amox", Name: "Amoxi 250", ActiveIngredient: "Amoxicillin"},
		"med-iver": {ID: "med-iver", Name: "Ivomec", ActiveIngredient: "Ivermectin"},
	}}
	svc := NewService(repo, meds)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo, meds
}

func validInput() CalculateInput {
	return CalculateInput{
		MedicationID:  "med-amox",
		PatientWeight: decimal.NewFromInt(20),
		Indication:    "otitis",
		DosePerKg:     decimal.NewFromInt(10),
		MaxDailyDose:  decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true},
		Frequency:     2,
	}
}

// -------------------------
// Tests
// -------------------------

func TestCalculate_PersistsSingleDose(t *testing.T) {
	svc, repo, _ := newTestService()

	res, err := svc.Calculate(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, res.Calculation.ID)
	assert.True(t, res.Calculation.CalculatedDose.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, DefaultUnit, res.Calculation.Unit)
	assert.True(t, res.Recommendation.Clamped())

	stored, err := repo.GetByID(context.Background(), res.Calculation.ID)
	require.NoError(t, err)
	assert.True(t, stored.CalculatedDose.Equal(res.Recommendation.SingleDose))
	assert.Equal(t, svc.now(), stored.CreatedAt)
}

func TestCalculate_InvalidInputDoesNotTouchStores(t *testing.T) {
	svc, repo, meds := newTestService()

	mutators := map[string]func(*CalculateInput){
		"no medication": func(in *CalculateInput) { in.MedicationID = "  " },
		"zero weight":   func(in *CalculateInput) { in.PatientWeight = decimal.Zero },
		"no frequency":  func(in *CalculateInput) { in.Frequency = 0 },
		"no indication": func(in *CalculateInput) { in.Indication = "" },
		"negative age": func(in *CalculateInput) {
			age := -1
			in.PatientAge = &age
		},
	}

	for name, mut := range mutators {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mut(&in)
			_, err := svc.Calculate(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "got %v", err)
		})
	}

	assert.Equal(t, 0, repo.creates)
	assert.Equal(t, 0, meds.lookups)
}

func TestCalculate_UnknownMedication(t *testing.T) {
	svc, repo, _ := newTestService()

	in := validInput()
	in.MedicationID = "missing"
	_, err := svc.Calculate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, 0, repo.creates)
}

func TestPediatric(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("table hit", func(t *testing.T) {
		p, err := svc.Pediatric(ctx, "med-amox", decimal.NewFromInt(12), 36)
		require.NoError(t, err)
		assert.Equal(t, "Amoxi 250", p.MedicationName)
		assert.True(t, p.CalculatedDailyDose.Equal(decimal.NewFromInt(300)))
		assert.True(t, p.CalculatedSingleDose.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, PediatricUnit, p.Unit)
	})

	t.Run("ingredient not in table", func(t *testing.T) {
		_, err := svc.Pediatric(ctx, "med-iver", decimal.NewFromInt(12), 36)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAvailable))
		assert.False(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("unknown medication", func(t *testing.T) {
		_, err := svc.Pediatric(ctx, "missing", decimal.NewFromInt(12), 36)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("invalid weight", func(t *testing.T) {
		_, err := svc.Pediatric(ctx, "med-amox", decimal.Zero, 36)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	})
}

func TestGetAndDelete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Calculate(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, res.Calculation.ID)
	require.NoError(t, err)
	assert.Equal(t, "otitis", got.Indication)

	require.NoError(t, svc.Delete(ctx, res.Calculation.ID))

	_, err = svc.GetByID(ctx, res.Calculation.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, res.Calculation.ID), apperr.ErrNotFound)
}

func TestListAndStatistics(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Calculate(ctx, validInput())
		require.NoError(t, err)
	}

	p, err := svc.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)

	st, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalCalculations)
	require.Len(t, st.TopIndications, 1)
	assert.Equal(t, IndicationCount{Indication: "otitis", Count: 3}, st.TopIndications[0])
}
