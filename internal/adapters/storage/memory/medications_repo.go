package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
)

type medicationRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication
}

func NewMedicationRepo() medications.Repository {
	return &medicationRepo{
		byID: make(map[string]medications.Medication),
	}
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return apperr.Conflict("medication already exists")
	}
	r.byID[m.ID] = cloneMedication(m)
	return nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[m.ID] = cloneMedication(m)
	return nil
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, apperr.ErrNotFound
	}
	return cloneMedication(m), nil
}

func (r *medicationRepo) List(ctx context.Context, f medications.ListFilter) ([]medications.Medication, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filterSorted(func(m medications.Medication) bool {
		return f.Search == "" || matchesMedication(m, f.Search)
	})
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *medicationRepo) Search(ctx context.Context, q string, limit int) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filterSorted(func(m medications.Medication) bool { return matchesMedication(m, q) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *medicationRepo) ListByForm(ctx context.Context, form medications.Form) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filterSorted(func(m medications.Medication) bool { return m.Form == form }), nil
}

func (r *medicationRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// CountByForm ignora los medicamentos sin forma informada.
func (r *medicationRepo) CountByForm(ctx context.Context) ([]medications.FormCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[medications.Form]int{}
	for _, m := range r.byID {
		if m.Form != "" {
			counts[m.Form]++
		}
	}
	out := make([]medications.FormCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, medications.FormCount{Form: f, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Form < out[j].Form
	})
	return out, nil
}

func (r *medicationRepo) CountByPrescription(ctx context.Context) ([]medications.PrescriptionCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[bool]int{}
	for _, m := range r.byID {
		counts[m.PrescriptionRequired]++
	}
	out := make([]medications.PrescriptionCount, 0, 2)
	for _, rx := range []bool{true, false} {
		if n, ok := counts[rx]; ok {
			out = append(out, medications.PrescriptionCount{PrescriptionRequired: rx, Count: n})
		}
	}
	return out, nil
}

// filterSorted asume el lock tomado. Orden: nombre asc, id para desempatar.
func (r *medicationRepo) filterSorted(keep func(medications.Medication) bool) []medications.Medication {
	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, cloneMedication(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func matchesMedication(m medications.Medication, q string) bool {
	return containsFold(m.Name, q) || containsFold(m.ActiveIngredient, q) || containsFold(m.Manufacturer, q)
}

// La slice de instrucciones no se comparte con el llamador.
func cloneMedication(m medications.Medication) medications.Medication {
	m.DosageInstructions = append([]string{}, m.DosageInstructions...)
	return m
}
