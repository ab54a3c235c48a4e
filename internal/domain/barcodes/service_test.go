package barcodes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID    map[string]Mapping
	writes  int
	lookups int
	// skipLookup simula la carrera: el pre-chequeo no ve el barcode.
	skipLookup bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Mapping{}}
}

func (r *testRepo) taken(code, selfID string) bool {
	for _, m := range r.byID {
		if m.Barcode == code && m.ID != selfID {
			return true
		}
	}
	return false
}

func (r *testRepo) Create(ctx context.Context, m Mapping) error {
	if r.taken(m.Barcode, "") {
		return apperr.Conflict("duplicate barcode")
	}
	r.writes++
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Mapping) error {
	if _, ok := r.byID[m.ID]; !ok {
		return apperr.ErrNotFound
	}
	if r.taken(m.Barcode, m.ID) {
		return apperr.Conflict("duplicate barcode")
	}
	r.writes++
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

func (r *testRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	for id, m := range r.byID {
		if m.MedicationID == medicationID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Mapping, error) {
	m, ok := r.byID[id]
	if !ok {
		return Mapping{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *testRepo) FindByBarcode(ctx context.Context, code string) (Mapping, error) {
	r.lookups++
	if !r.skipLookup {
		for _, m := range r.byID {
			if m.Barcode == code {
				return m, nil
			}
		}
	}
	return Mapping{}, apperr.ErrNotFound
}

func (r *testRepo) ListByMedication(ctx context.Context, medicationID string) ([]Mapping, error) {
	out := make([]Mapping, 0)
	for _, m := range r.byID {
		if m.MedicationID == medicationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Mapping, int, error) {
	out := make([]Mapping, 0)
	for _, m := range r.byID {
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *testRepo) Search(ctx context.Context, q string, limit int) ([]Mapping, error) {
	return nil, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) { return len(r.byID), nil }

func (r *testRepo) CountByType(ctx context.Context) ([]TypeCount, error) {
	counts := map[Symbology]int{}
	for _, m := range r.byID {
		counts[m.Type]++
	}
	out := make([]TypeCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, TypeCount{Type: k, Count: v})
	}
	return out, nil
}

func (r *testRepo) CountDistinctMedications(ctx context.Context) (int, error) {
	seen := map[string]struct{}{}
	for _, m := range r.byID {
		seen[m.MedicationID] = struct{}{}
	}
	return len(seen), nil
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

func (f *fakeMeds) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

func newTestService() (*Service, *testRepo, *fakeMeds) {
	repo := newTestRepo()
	meds := &fakeMeds{byID: map[string]medications.Medication{
		"med-1": {ID: "med-1", Name: "Amoxi 250", ActiveIngredient: "amoxicillin"},
		"med-2": {ID: "med-2", Name: "Meloxidyl", ActiveIngredient: "meloxicam"},
		"med-3": {ID: "med-3", Name: "Ivomec", ActiveIngredient: "ivermectin"},
	}}
	svc := NewService(repo, meds)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo, meds
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) Mapping {
	t.Helper()
	m, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return m
}

func strp(s string) *string { return &s }

func symp(s Symbology) *Symbology { return &s }

// -------------------------
// Create
// -------------------------

func TestCreate_DefaultsToEAN13(t *testing.T) {
	svc, _, _ := newTestService()

	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})
	assert.Equal(t, SymbologyEAN13, m.Type)
	assert.Equal(t, "1234567890123", m.Barcode)
	assert.NotEmpty(t, m.ID)
}

func TestCreate_SurroundingSpacesAreInvalid(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{MedicationID: "med-1", Barcode: " 1234567890123 "})
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Empty(t, repo.byID)

	_, err = svc.Create(context.Background(), CreateInput{MedicationID: "med-1", Barcode: "036000291452\n", Type: SymbologyUPC})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	assert.ErrorIs(t, svc.Validate(" 1234567890123 ", SymbologyEAN13), ErrInvalidFormat)
	assert.NoError(t, svc.Validate("1234567890123", SymbologyEAN13))

	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})
	_, err = svc.Update(context.Background(), m.ID, UpdateInput{Barcode: strp("1234567890123 ")})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})

	_, err := svc.Create(context.Background(), CreateInput{MedicationID: "med-2", Barcode: "1234567890123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, 1, repo.writes)
	assert.Len(t, repo.byID, 1)
}

func TestCreate_CatalogConflictOnWrite(t *testing.T) {
	svc, repo, _ := newTestService()
	mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})

	repo.skipLookup = true
	_, err := svc.Create(context.Background(), CreateInput{MedicationID: "med-2", Barcode: "1234567890123"})
	assert.ErrorIs(t, err, ErrBarcodeTaken)
	assert.Len(t, repo.byID, 1)
}

func TestCreate_CheckOrder(t *testing.T) {
	svc, repo, meds := newTestService()
	mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})
	meds.lookups, repo.lookups = 0, 0

	// formato inválido + medicamento inexistente => gana el formato, sin lookups
	_, err := svc.Create(context.Background(), CreateInput{MedicationID: "missing", Barcode: "123", Type: SymbologyEAN13})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Equal(t, 0, meds.lookups)
	assert.Equal(t, 0, repo.lookups)

	// medicamento inexistente + barcode duplicado => NotFound
	_, err = svc.Create(context.Background(), CreateInput{MedicationID: "missing", Barcode: "1234567890123"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, 0, repo.lookups)

	_, err = svc.Create(context.Background(), CreateInput{MedicationID: "med-1", Barcode: "x", Type: "QR"})
	assert.ErrorIs(t, err, ErrUnknownSymbology)
}

func TestCreate_RequiredFields(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{Barcode: "1234567890123"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.Create(context.Background(), CreateInput{MedicationID: "med-1", Barcode: "  "})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

// -------------------------
// Update
// -------------------------

func TestUpdate_SameBarcodeDoesNotSelfConflict(t *testing.T) {
	svc, _, _ := newTestService()
	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})

	got, err := svc.Update(context.Background(), m.ID, UpdateInput{
		Barcode:     strp("1234567890123"),
		Type:        symp(SymbologyEAN13),
		PackageSize: strp("20 tabs"),
	})
	require.NoError(t, err)
	assert.Equal(t, "20 tabs", got.PackageSize)
}

func TestUpdate_ChangeToTakenBarcode(t *testing.T) {
	svc, _, _ := newTestService()
	a := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})
	mustCreate(t, svc, CreateInput{MedicationID: "med-2", Barcode: "9876543210987"})

	_, err := svc.Update(context.Background(), a.ID, UpdateInput{Barcode: strp("9876543210987")})
	assert.ErrorIs(t, err, ErrBarcodeTaken)
}

func TestUpdate_FormatBeforeLookupWhenBothGiven(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "missing", UpdateInput{
		Barcode: strp("123"),
		Type:    symp(SymbologyUPC),
	})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestUpdate_MergedPairValidated(t *testing.T) {
	svc, _, _ := newTestService()
	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})

	// cambia solo el tipo: EAN de 13 dígitos no es un UPC válido
	_, err := svc.Update(context.Background(), m.ID, UpdateInput{Type: symp(SymbologyUPC)})
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	got, err := svc.Update(context.Background(), m.ID, UpdateInput{Type: symp(SymbologyCode128)})
	require.NoError(t, err)
	assert.Equal(t, SymbologyCode128, got.Type)
}

func TestUpdate_MedicationMustExist(t *testing.T) {
	svc, _, _ := newTestService()
	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})

	_, err := svc.Update(context.Background(), m.ID, UpdateInput{MedicationID: strp("missing")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	got, err := svc.Update(context.Background(), m.ID, UpdateInput{MedicationID: strp("med-2")})
	require.NoError(t, err)
	assert.Equal(t, "med-2", got.MedicationID)

	_, err = svc.Update(context.Background(), "missing", UpdateInput{PZN: strp("123")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_ExpiryDate(t *testing.T) {
	svc, _, _ := newTestService()
	exp := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	m := mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123", ExpiryDate: &exp})

	got, err := svc.Update(context.Background(), m.ID, UpdateInput{BatchNumber: strp("B-1")})
	require.NoError(t, err)
	require.NotNil(t, got.ExpiryDate)

	got, err = svc.Update(context.Background(), m.ID, UpdateInput{ClearExpiryDate: true})
	require.NoError(t, err)
	assert.Nil(t, got.ExpiryDate)
}

// -------------------------
// Scan, bulk, stats
// -------------------------

func TestScan(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, CreateInput{MedicationID: "med-2", Barcode: "1234567890123"})

	res, err := svc.Scan(context.Background(), "1234567890123")
	require.NoError(t, err)
	assert.Equal(t, "Meloxidyl", res.Medication.Name)
	assert.Equal(t, svc.now(), res.ScannedAt)

	_, err = svc.Scan(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, ErrBarcodeNotFound)
}

func TestBulkImport_PartialSuccess(t *testing.T) {
	svc, _, _ := newTestService()

	res, err := svc.BulkImport(context.Background(), []CreateInput{
		{MedicationID: "med-1", Barcode: "1234567890123"},
		{MedicationID: "med-1", Barcode: "1234567890123"},
		{MedicationID: "missing", Barcode: "9876543210987"},
		{MedicationID: "med-2", Barcode: "ABC-1", Type: SymbologyCode128},
	})
	require.NoError(t, err)
	assert.Len(t, res.Imported, 2)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 1, res.Failed[0].Index)
	assert.True(t, errors.Is(res.Failed[0].Err, apperr.ErrConflict))
	assert.Equal(t, 2, res.Failed[1].Index)
	assert.True(t, errors.Is(res.Failed[1].Err, apperr.ErrNotFound))

	_, err = svc.BulkImport(context.Background(), nil)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestStatistics(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "1234567890123"})
	mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: "123456789012", Type: SymbologyUPC})
	mustCreate(t, svc, CreateInput{MedicationID: "med-2", Barcode: "9876543210987"})

	st, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalBarcodes)
	assert.Equal(t, 2, st.MedicationsWithBarcodes)
	assert.Equal(t, 1, st.MedicationsWithoutBarcodes)
	assert.Len(t, st.ByType, 2)
}

func TestList_TotalPages(t *testing.T) {
	svc, _, _ := newTestService()
	for _, code := range []string{"1234567890123", "1234567890124", "1234567890125"} {
		mustCreate(t, svc, CreateInput{MedicationID: "med-1", Barcode: code})
	}

	p, err := svc.List(context.Background(), ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
}

func TestListRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.List(context.Background(), ListFilter{Type: "QR"})
	assert.ErrorIs(t, err, ErrUnknownSymbology)
}
