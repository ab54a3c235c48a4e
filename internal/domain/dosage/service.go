package dosage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
	"vet-medication-reference/internal/platform/httpjson"
)

var (
	ErrNotFound = apperr.NotFound("dosage calculation not found")
)

const topIndicationsLimit = 10

// MedicationLookup es lo único que el cálculo necesita del catálogo.
type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo Repository
	meds MedicationLookup
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationLookup) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

type CalculateInput struct {
	MedicationID  string
	PatientWeight decimal.Decimal
	PatientAge    *int
	Indication    string
	DosePerKg     decimal.Decimal
	MaxDailyDose  decimal.NullDecimal
	Frequency     int
	Unit          string
	CalculatedBy  string
	Notes         string
}

func (in CalculateInput) doseInput() DoseInput {
	return DoseInput{
		Weight:       in.PatientWeight,
		DosePerKg:    in.DosePerKg,
		Frequency:    in.Frequency,
		MaxDailyDose: in.MaxDailyDose,
	}
}

// Calculate valida todo antes de tocar el catálogo, resuelve el medicamento
// y persiste el cálculo con la dosis recomendada.
func (s *Service) Calculate(ctx context.Context, in CalculateInput) (Result, error) {
	medID := strings.TrimSpace(in.MedicationID)
	if medID == "" {
		return Result{}, apperr.Invalid("medication_id is required")
	}
	if err := in.doseInput().Validate(); err != nil {
		return Result{}, err
	}
	indication := strings.TrimSpace(in.Indication)
	if indication == "" {
		return Result{}, apperr.Invalid("indication is required")
	}
	if in.PatientAge != nil && *in.PatientAge < 0 {
		return Result{}, apperr.Invalid("patient_age must not be negative")
	}

	if _, err := s.meds.GetByID(ctx, medID); err != nil {
		return Result{}, err
	}

	unit := strings.TrimSpace(in.Unit)
	rec, err := Compute(in.doseInput(), unit)
	if err != nil {
		return Result{}, err
	}

	c := Calculation{
		ID:             uuid.NewString(),
		MedicationID:   medID,
		PatientWeight:  in.PatientWeight,
		PatientAge:     in.PatientAge,
		Indication:     indication,
		DosePerKg:      in.DosePerKg,
		MaxDailyDose:   in.MaxDailyDose,
		Frequency:      in.Frequency,
		CalculatedDose: rec.SingleDose,
		Unit:           rec.Unit,
		CalculatedBy:   strings.TrimSpace(in.CalculatedBy),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Result{}, err
	}
	return Result{Calculation: c, Recommendation: rec}, nil
}

// Pediatric usa la tabla estática. Medicamento inexistente => NotFound;
// principio activo fuera de la tabla => NotAvailable.
func (s *Service) Pediatric(ctx context.Context, medicationID string, weight decimal.Decimal, ageMonths int) (PediatricRecommendation, error) {
	if !weight.IsPositive() {
		return PediatricRecommendation{}, apperr.Invalid("weight must be greater than 0")
	}
	if ageMonths < 0 {
		return PediatricRecommendation{}, apperr.Invalid("age must not be negative")
	}

	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return PediatricRecommendation{}, err
	}

	rule, ok := LookupPediatric(m.ActiveIngredient)
	if !ok {
		return PediatricRecommendation{}, apperr.NotAvailable("no pediatric dosing available for %q", m.ActiveIngredient)
	}

	single, daily := rule.apply(weight)
	return PediatricRecommendation{
		MedicationID:         m.ID,
		MedicationName:       m.Name,
		PatientWeight:        weight,
		PatientAge:           ageMonths,
		RecommendedDose:      rule.DosePerKg,
		MaxDailyDose:         rule.MaxDailyPerKg,
		Unit:                 rule.Unit,
		CalculatedSingleDose: single,
		CalculatedDailyDose:  daily,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Calculation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Calculation{}, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Calculation{}, ErrNotFound
		}
		return Calculation{}, err
	}
	return c, nil
}

func (s *Service) History(ctx context.Context, medicationID string) ([]Calculation, error) {
	return s.repo.ListByMedication(ctx, strings.TrimSpace(medicationID))
}

type Page struct {
	Items       []Calculation
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

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	top, err := s.repo.TopIndications(ctx, topIndicationsLimit)
	if err != nil {
		return Statistics{}, err
	}
	avgs, err := s.repo.AveragesByIndication(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{
		TotalCalculations: total,
		TopIndications:    top,
		AverageDoses:      avgs,
	}, nil
}
