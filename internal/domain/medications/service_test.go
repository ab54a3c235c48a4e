package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-medication-reference/internal/platform/apperr"
)

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Medication, int, error) {
	out := make([]Medication, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *testRepo) Search(ctx context.Context, q string, limit int) ([]Medication, error) {
	return nil, nil
}

func (r *testRepo) ListByForm(ctx context.Context, form Form) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.Form == form {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) { return len(r.byID), nil }

func (r *testRepo) CountByForm(ctx context.Context) ([]FormCount, error) { return nil, nil }

func (r *testRepo) CountByPrescription(ctx context.Context) ([]PrescriptionCount, error) {
	return nil, nil
}

type recordingDependent struct {
	deleted []string
	err     error
}

func (d *recordingDependent) DeleteByMedication(ctx context.Context, medicationID string) error {
	if d.err != nil {
		return d.err
	}
	d.deleted = append(d.deleted, medicationID)
	return nil
}

func newTestService(deps ...DependentStore) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, deps...)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), CreateInput{
		Name:               " Amoxi 250 ",
		ActiveIngredient:   "amoxicillin",
		DosageAmount:       decimal.NullDecimal{Decimal: decimal.NewFromInt(250), Valid: true},
		DosageUnit:         UnitMg,
		DosageInstructions: []string{"  ", "twice daily"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Amoxi 250", m.Name)
	assert.Equal(t, CategoryOther, m.Category)
	assert.True(t, m.PrescriptionRequired)
	assert.Equal(t, []string{"twice daily"}, m.DosageInstructions)
	assert.Equal(t, "250 mg", m.DosageDisplay())
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
}

func TestCreate_Validation(t *testing.T) {
	svc, repo := newTestService()

	cases := map[string]CreateInput{
		"no name":       {ActiveIngredient: "x"},
		"no ingredient": {Name: "x"},
		"bad category":  {Name: "x", ActiveIngredient: "x", Category: "candy"},
		"bad form":      {Name: "x", ActiveIngredient: "x", Form: "gum"},
		"bad unit":      {Name: "x", ActiveIngredient: "x", DosageUnit: "bucket"},
		"negative amount": {
			Name: "x", ActiveIngredient: "x",
			DosageAmount: decimal.NullDecimal{Decimal: decimal.NewFromInt(-1), Valid: true},
		},
		"amount too large": {
			Name: "x", ActiveIngredient: "x",
			DosageAmount: decimal.NullDecimal{Decimal: decimal.New(1, 8), Valid: true},
		},
		"amount scale": {
			Name: "x", ActiveIngredient: "x",
			DosageAmount: decimal.NullDecimal{Decimal: decimal.RequireFromString("0.12345"), Valid: true},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "got %v", err)
		})
	}
	assert.Empty(t, repo.byID)
}

func TestCreate_ExplicitNoPrescription(t *testing.T) {
	svc, _ := newTestService()
	rx := false

	m, err := svc.Create(context.Background(), CreateInput{Name: "Vit B", ActiveIngredient: "b12", PrescriptionRequired: &rx})
	require.NoError(t, err)
	assert.False(t, m.PrescriptionRequired)
	assert.NotNil(t, m.DosageInstructions)
}

func TestUpdate_Partial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{
		Name:             "Amoxi",
		ActiveIngredient: "amoxicillin",
		DosageAmount:     decimal.NullDecimal{Decimal: decimal.NewFromInt(250), Valid: true},
		DosageUnit:       UnitMg,
	})
	require.NoError(t, err)

	form := FormTablet
	cleared := decimal.NullDecimal{}
	got, err := svc.Update(ctx, m.ID, UpdateInput{Form: &form, DosageAmount: &cleared})
	require.NoError(t, err)
	assert.Equal(t, FormTablet, got.Form)
	assert.False(t, got.DosageAmount.Valid)
	assert.Equal(t, "Amoxi", got.Name)

	empty := " "
	_, err = svc.Update(ctx, m.ID, UpdateInput{Name: &empty})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.Update(ctx, "missing", UpdateInput{Form: &form})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Cascades(t *testing.T) {
	calcs := &recordingDependent{}
	codes := &recordingDependent{}
	svc, repo := newTestService(calcs, codes)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{Name: "Amoxi", ActiveIngredient: "amoxicillin"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []string{m.ID}, calcs.deleted)
	assert.Equal(t, []string{m.ID}, codes.deleted)
	assert.Empty(t, repo.byID)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), ErrNotFound)
}

func TestDelete_DependentFailureKeepsRoot(t *testing.T) {
	boom := errors.New("boom")
	svc, repo := newTestService(&recordingDependent{err: boom})
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{Name: "Amoxi", ActiveIngredient: "amoxicillin"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), boom)
	assert.Contains(t, repo.byID, m.ID)
}

func TestSearchAndListByForm(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Search(ctx, "  ")
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.ListByForm(ctx, "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.ListByForm(ctx, "gum")
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	items, err := svc.ListByForm(ctx, FormTablet)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestList_PageMath(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, CreateInput{Name: n, ActiveIngredient: n})
		require.NoError(t, err)
	}

	p, err := svc.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
}
