package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/domain/dosage"
	"vet-medication-reference/internal/platform/apperr"
)

type calculationRepo struct {
	mu   sync.RWMutex
	byID map[string]dosage.Calculation
}

func NewCalculationRepo() dosage.Repository {
	return &calculationRepo{
		byID: make(map[string]dosage.Calculation),
	}
}

func (r *calculationRepo) Create(ctx context.Context, c dosage.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("calculation id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return apperr.Conflict("calculation already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *calculationRepo) GetByID(ctx context.Context, id string) (dosage.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return dosage.Calculation{}, apperr.ErrNotFound
	}
	return c, nil
}

func (r *calculationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *calculationRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.byID {
		if c.MedicationID == medicationID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *calculationRepo) ListByMedication(ctx context.Context, medicationID string) ([]dosage.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.newestFirst(func(c dosage.Calculation) bool { return c.MedicationID == medicationID }), nil
}

func (r *calculationRepo) List(ctx context.Context, f dosage.ListFilter) ([]dosage.Calculation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.newestFirst(func(c dosage.Calculation) bool {
		return f.MedicationID == "" || c.MedicationID == f.MedicationID
	})
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *calculationRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *calculationRepo) TopIndications(ctx context.Context, limit int) ([]dosage.IndicationCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	for _, c := range r.byID {
		counts[c.Indication]++
	}
	out := make([]dosage.IndicationCount, 0, len(counts))
	for ind, n := range counts {
		out = append(out, dosage.IndicationCount{Indication: ind, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Indication < out[j].Indication
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *calculationRepo) AveragesByIndication(ctx context.Context) ([]dosage.IndicationAverage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type acc struct {
		dose, weight decimal.Decimal
		n            int64
	}
	sums := map[string]*acc{}
	for _, c := range r.byID {
		a, ok := sums[c.Indication]
		if !ok {
			a = &acc{}
			sums[c.Indication] = a
		}
		a.dose = a.dose.Add(c.CalculatedDose)
		a.weight = a.weight.Add(c.PatientWeight)
		a.n++
	}

	out := make([]dosage.IndicationAverage, 0, len(sums))
	for ind, a := range sums {
		n := decimal.NewFromInt(a.n)
		out = append(out, dosage.IndicationAverage{
			Indication: ind,
			AvgDose:    a.dose.Div(n).Round(dosage.Precision),
			AvgWeight:  a.weight.Div(n).Round(dosage.Precision),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Indication < out[j].Indication })
	return out, nil
}

func (r *calculationRepo) newestFirst(keep func(dosage.Calculation) bool) []dosage.Calculation {
	out := make([]dosage.Calculation, 0)
	for _, c := range r.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
