package barcodes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
	"vet-medication-reference/internal/platform/httpjson"
)

var (
	ErrNotFound        = apperr.NotFound("barcode mapping not found")
	ErrBarcodeNotFound = apperr.NotFound("barcode not found")
	ErrBarcodeTaken    = apperr.Conflict("barcode already registered")
)

const searchLimit = 10

// MedicationCatalog es lo que barcodes consulta del catálogo de medicamentos.
type MedicationCatalog interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
	meds MedicationCatalog
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationCatalog) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

type CreateInput struct {
	MedicationID string
	Barcode      string
	Type         Symbology // vacío => EAN-13

	PZN         string
	PackageSize string
	BatchNumber string
	ExpiryDate  *time.Time
}

// Create: formato -> medicamento existe -> barcode libre -> escritura.
func (s *Service) Create(ctx context.Context, in CreateInput) (Mapping, error) {
	medID := strings.TrimSpace(in.MedicationID)
	// El barcode se valida tal cual llega: con espacios no es un EAN/UPC.
	code := in.Barcode
	if medID == "" {
		return Mapping{}, apperr.Invalid("medication_id is required")
	}
	if strings.TrimSpace(code) == "" {
		return Mapping{}, apperr.Invalid("barcode is required")
	}
	sym := in.Type
	if sym == "" {
		sym = DefaultSymbology
	}
	if err := ValidateFormat(code, sym); err != nil {
		return Mapping{}, err
	}

	if _, err := s.meds.GetByID(ctx, medID); err != nil {
		return Mapping{}, err
	}
	if err := s.ensureFree(ctx, code, ""); err != nil {
		return Mapping{}, err
	}

	now := s.now()
	m := Mapping{
		ID:           uuid.NewString(),
		MedicationID: medID,
		Barcode:      code,
		Type:         sym,
		PZN:          strings.TrimSpace(in.PZN),
		PackageSize:  strings.TrimSpace(in.PackageSize),
		BatchNumber:  strings.TrimSpace(in.BatchNumber),
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Dos altas concurrentes pueden pasar ensureFree; el catálogo decide.
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return Mapping{}, ErrBarcodeTaken
		}
		return Mapping{}, err
	}
	return m, nil
}

// UpdateInput: nil = no tocar. ClearExpiryDate borra la fecha (gana sobre ExpiryDate).
type UpdateInput struct {
	MedicationID *string
	Barcode      *string
	Type         *Symbology

	PZN             *string
	PackageSize     *string
	BatchNumber     *string
	ExpiryDate      *time.Time
	ClearExpiryDate bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Mapping, error) {
	if in.Barcode != nil && strings.TrimSpace(*in.Barcode) == "" {
		return Mapping{}, apperr.Invalid("barcode must not be empty")
	}
	if in.MedicationID != nil && strings.TrimSpace(*in.MedicationID) == "" {
		return Mapping{}, apperr.Invalid("medication_id must not be empty")
	}

	// Con barcode y tipo presentes, el formato se valida antes de cualquier lookup.
	bothGiven := in.Barcode != nil && in.Type != nil
	if bothGiven {
		if err := ValidateFormat(*in.Barcode, *in.Type); err != nil {
			return Mapping{}, err
		}
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Mapping{}, err
	}

	oldCode, oldType := m.Barcode, m.Type
	if in.Barcode != nil {
		m.Barcode = *in.Barcode
	}
	if in.Type != nil {
		m.Type = *in.Type
	}
	codeChanged := m.Barcode != oldCode
	if !bothGiven && (codeChanged || m.Type != oldType) {
		if err := ValidateFormat(m.Barcode, m.Type); err != nil {
			return Mapping{}, err
		}
	}

	if in.MedicationID != nil {
		medID := strings.TrimSpace(*in.MedicationID)
		if medID != m.MedicationID {
			if _, err := s.meds.GetByID(ctx, medID); err != nil {
				return Mapping{}, err
			}
			m.MedicationID = medID
		}
	}

	if codeChanged {
		if err := s.ensureFree(ctx, m.Barcode, m.ID); err != nil {
			return Mapping{}, err
		}
	}

	setTrimmed(&m.PZN, in.PZN)
	setTrimmed(&m.PackageSize, in.PackageSize)
	setTrimmed(&m.BatchNumber, in.BatchNumber)
	switch {
	case in.ClearExpiryDate:
		m.ExpiryDate = nil
	case in.ExpiryDate != nil:
		m.ExpiryDate = in.ExpiryDate
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			return Mapping{}, ErrBarcodeTaken
		case errors.Is(err, apperr.ErrNotFound):
			return Mapping{}, ErrNotFound
		}
		return Mapping{}, err
	}
	return m, nil
}

// ensureFree falla con Conflict si el barcode pertenece a otro mapping
// distinto de selfID.
func (s *Service) ensureFree(ctx context.Context, code, selfID string) error {
	existing, err := s.repo.FindByBarcode(ctx, code)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return ErrBarcodeTaken
		}
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *Service) Scan(ctx context.Context, barcode string) (ScanResult, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return ScanResult{}, ErrBarcodeNotFound
	}
	m, err := s.repo.FindByBarcode(ctx, code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ScanResult{}, ErrBarcodeNotFound
		}
		return ScanResult{}, err
	}
	med, err := s.meds.GetByID(ctx, m.MedicationID)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{Mapping: m, Medication: med, ScannedAt: s.now()}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Mapping, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Mapping{}, ErrNotFound
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Mapping{}, ErrNotFound
		}
		return Mapping{}, err
	}
	return m, nil
}

func (s *Service) ListByMedication(ctx context.Context, medicationID string) ([]Mapping, error) {
	return s.repo.ListByMedication(ctx, strings.TrimSpace(medicationID))
}

type Page struct {
	Items       []Mapping
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

func (s *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return Page{}, ErrUnknownSymbology
	}
	filter.MedicationID = strings.TrimSpace(filter.MedicationID)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:       items,
		TotalCount:  total,
		TotalPages:  httpjson.TotalPages(total, filter.Limit),
		CurrentPage: filter.Page,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Search(ctx context.Context, query string) ([]Mapping, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Invalid("search term is required")
	}
	return s.repo.Search(ctx, query, searchLimit)
}

// Validate solo chequea formato; no consulta el catálogo.
func (s *Service) Validate(barcode string, sym Symbology) error {
	if strings.TrimSpace(barcode) == "" {
		return apperr.Invalid("barcode is required")
	}
	return ValidateFormat(barcode, sym)
}

type BulkError struct {
	Index int
	Input CreateInput
	Err   error
}

type BulkResult struct {
	Imported []Mapping
	Failed   []BulkError
}

// BulkImport procesa cada item por separado: uno que falla no frena al resto.
func (s *Service) BulkImport(ctx context.Context, items []CreateInput) (BulkResult, error) {
	if len(items) == 0 {
		return BulkResult{}, apperr.Invalid("barcodes must be a non-empty array")
	}

	res := BulkResult{
		Imported: make([]Mapping, 0, len(items)),
		Failed:   make([]BulkError, 0),
	}
	for i, in := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		m, err := s.Create(ctx, in)
		if err != nil {
			res.Failed = append(res.Failed, BulkError{Index: i, Input: in, Err: err})
			continue
		}
		res.Imported = append(res.Imported, m)
	}
	return res, nil
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return Statistics{}, err
	}
	with, err := s.repo.CountDistinctMedications(ctx)
	if err != nil {
		return Statistics{}, err
	}
	allMeds, err := s.meds.Count(ctx)
	if err != nil {
		return Statistics{}, err
	}

	without := allMeds - with
	if without < 0 {
		without = 0
	}
	return Statistics{
		TotalBarcodes:              total,
		ByType:                     byType,
		MedicationsWithBarcodes:    with,
		MedicationsWithoutBarcodes: without,
	}, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
