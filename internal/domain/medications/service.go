package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/platform/apperr"
	"vet-medication-reference/internal/platform/httpjson"
)

var (
	ErrNotFound = apperr.NotFound("medication not found")
)

const searchLimit = 10

type Service struct {
	repo       Repository
	dependents []DependentStore
	now        func() time.Time
}

func NewService(repo Repository, dependents ...DependentStore) *Service {
	return &Service{
		repo:       repo,
		dependents: dependents,
		now:        time.Now,
	}
}

type CreateInput struct {
	Name             string
	ActiveIngredient string
	Strength         string
	DosageAmount     decimal.NullDecimal
	DosageUnit       DosageUnit
	Category         Category
	Form             Form
	Manufacturer     string

	Description       string
	SideEffects       string
	Contraindications string
	Interactions      string
	Storage           string

	// nil => true (la mayoría de los productos veterinarios requieren receta)
	PrescriptionRequired *bool
	DosageInstructions   []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	name := strings.TrimSpace(in.Name)
	ingredient := strings.TrimSpace(in.ActiveIngredient)
	if name == "" {
		return Medication{}, apperr.Invalid("name is required")
	}
	if ingredient == "" {
		return Medication{}, apperr.Invalid("active_ingredient is required")
	}

	category := in.Category
	if category == "" {
		category = CategoryOther
	}
	if err := validateEnums(category, in.Form, in.DosageUnit, in.DosageAmount); err != nil {
		return Medication{}, err
	}

	rx := true
	if in.PrescriptionRequired != nil {
		rx = *in.PrescriptionRequired
	}

	now := s.now()
	m := Medication{
		ID:                   uuid.NewString(),
		Name:                 name,
		ActiveIngredient:     ingredient,
		Strength:             strings.TrimSpace(in.Strength),
		DosageAmount:         in.DosageAmount,
		DosageUnit:           in.DosageUnit,
		Category:             category,
		Form:                 in.Form,
		Manufacturer:         strings.TrimSpace(in.Manufacturer),
		Description:          strings.TrimSpace(in.Description),
		SideEffects:          strings.TrimSpace(in.SideEffects),
		Contraindications:    strings.TrimSpace(in.Contraindications),
		Interactions:         strings.TrimSpace(in.Interactions),
		Storage:              strings.TrimSpace(in.Storage),
		PrescriptionRequired: rx,
		DosageInstructions:   normalizeInstructions(in.DosageInstructions),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name             *string
	ActiveIngredient *string
	Strength         *string
	DosageAmount     *decimal.NullDecimal
	DosageUnit       *DosageUnit
	Category         *Category
	Form             *Form
	Manufacturer     *string

	Description       *string
	SideEffects       *string
	Contraindications *string
	Interactions      *string
	Storage           *string

	PrescriptionRequired *bool
	DosageInstructions   *[]string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Medication{}, apperr.Invalid("name must not be empty")
		}
		m.Name = v
	}
	if in.ActiveIngredient != nil {
		v := strings.TrimSpace(*in.ActiveIngredient)
		if v == "" {
			return Medication{}, apperr.Invalid("active_ingredient must not be empty")
		}
		m.ActiveIngredient = v
	}
	setTrimmed(&m.Strength, in.Strength)
	setTrimmed(&m.Manufacturer, in.Manufacturer)
	setTrimmed(&m.Description, in.Description)
	setTrimmed(&m.SideEffects, in.SideEffects)
	setTrimmed(&m.Contraindications, in.Contraindications)
	setTrimmed(&m.Interactions, in.Interactions)
	setTrimmed(&m.Storage, in.Storage)

	if in.DosageAmount != nil {
		m.DosageAmount = *in.DosageAmount
	}
	if in.DosageUnit != nil {
		m.DosageUnit = *in.DosageUnit
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.Form != nil {
		m.Form = *in.Form
	}
	if in.PrescriptionRequired != nil {
		m.PrescriptionRequired = *in.PrescriptionRequired
	}
	if in.DosageInstructions != nil {
		m.DosageInstructions = normalizeInstructions(*in.DosageInstructions)
	}

	if err := validateEnums(m.Category, m.Form, m.DosageUnit, m.DosageAmount); err != nil {
		return Medication{}, err
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Medication{}, ErrNotFound
		}
		return Medication{}, err
	}
	return m, nil
}

// Delete borra el medicamento y, antes, sus cálculos y barcodes.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	for _, d := range s.dependents {
		if err := d.DeleteByMedication(ctx, id); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrNotFound
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Medication{}, ErrNotFound
		}
		return Medication{}, err
	}
	return m, nil
}

type Page struct {
	Items       []Medication
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
	filter.Search = strings.TrimSpace(filter.Search)

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

func (s *Service) Search(ctx context.Context, query string) ([]Medication, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Invalid("search term is required")
	}
	return s.repo.Search(ctx, query, searchLimit)
}

func (s *Service) ListByForm(ctx context.Context, form Form) ([]Medication, error) {
	if form == "" || !form.Valid() {
		return nil, apperr.Invalid("unknown form %q", form)
	}
	return s.repo.ListByForm(ctx, form)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	byForm, err := s.repo.CountByForm(ctx)
	if err != nil {
		return Statistics{}, err
	}
	byRx, err := s.repo.CountByPrescription(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{Total: total, ByForm: byForm, ByPrescription: byRx}, nil
}

var maxDosageAmount = decimal.New(1, 8)

func validateEnums(c Category, f Form, u DosageUnit, amount decimal.NullDecimal) error {
	if !c.Valid() {
		return apperr.Invalid("unknown category %q", c)
	}
	if !f.Valid() {
		return apperr.Invalid("unknown form %q", f)
	}
	if !u.Valid() {
		return apperr.Invalid("unknown dosage_unit %q", u)
	}
	if amount.Valid && amount.Decimal.IsNegative() {
		return apperr.Invalid("dosage_amount must not be negative")
	}
	// numeric(12,4)
	if amount.Valid && (amount.Decimal.GreaterThanOrEqual(maxDosageAmount) || !amount.Decimal.Equal(amount.Decimal.Round(4))) {
		return apperr.Invalid("dosage_amount must be less than %s with at most 4 decimal places", maxDosageAmount)
	}
	return nil
}

// Nunca nil: la columna es NOT NULL.
func normalizeInstructions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
