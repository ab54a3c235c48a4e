package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-medication-reference/internal/domain/barcodes"
	"vet-medication-reference/internal/platform/apperr"
)

// barcodeRepo mantiene un índice barcode -> id. La unicidad se verifica y se
// escribe bajo el mismo lock, así dos altas concurrentes no pasan las dos.
type barcodeRepo struct {
	mu        sync.RWMutex
	byID      map[string]barcodes.Mapping
	byBarcode map[string]string
}

func NewBarcodeRepo() barcodes.Repository {
	return &barcodeRepo{
		byID:      make(map[string]barcodes.Mapping),
		byBarcode: make(map[string]string),
	}
}

func (r *barcodeRepo) Create(ctx context.Context, m barcodes.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("mapping id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return apperr.Conflict("mapping already exists")
	}
	if _, taken := r.byBarcode[m.Barcode]; taken {
		return apperr.Conflict("barcode %q already registered", m.Barcode)
	}
	r.byID[m.ID] = m
	r.byBarcode[m.Barcode] = m.ID
	return nil
}

func (r *barcodeRepo) Update(ctx context.Context, m barcodes.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[m.ID]
	if !exists {
		return apperr.ErrNotFound
	}
	if owner, taken := r.byBarcode[m.Barcode]; taken && owner != m.ID {
		return apperr.Conflict("barcode %q already registered", m.Barcode)
	}
	delete(r.byBarcode, prev.Barcode)
	r.byID[m.ID] = m
	r.byBarcode[m.Barcode] = m.ID
	return nil
}

func (r *barcodeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	delete(r.byBarcode, m.Barcode)
	delete(r.byID, id)
	return nil
}

func (r *barcodeRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.byID {
		if m.MedicationID == medicationID {
			delete(r.byBarcode, m.Barcode)
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *barcodeRepo) GetByID(ctx context.Context, id string) (barcodes.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return barcodes.Mapping{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *barcodeRepo) FindByBarcode(ctx context.Context, code string) (barcodes.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byBarcode[code]
	if !ok {
		return barcodes.Mapping{}, apperr.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *barcodeRepo) ListByMedication(ctx context.Context, medicationID string) ([]barcodes.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.newestFirst(func(m barcodes.Mapping) bool { return m.MedicationID == medicationID }), nil
}

func (r *barcodeRepo) List(ctx context.Context, f barcodes.ListFilter) ([]barcodes.Mapping, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.newestFirst(func(m barcodes.Mapping) bool {
		if f.MedicationID != "" && m.MedicationID != f.MedicationID {
			return false
		}
		return f.Type == "" || m.Type == f.Type
	})
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *barcodeRepo) Search(ctx context.Context, q string, limit int) ([]barcodes.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.newestFirst(func(m barcodes.Mapping) bool {
		return containsFold(m.Barcode, q) || containsFold(m.PZN, q) || containsFold(m.PackageSize, q)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *barcodeRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *barcodeRepo) CountByType(ctx context.Context) ([]barcodes.TypeCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[barcodes.Symbology]int{}
	for _, m := range r.byID {
		counts[m.Type]++
	}
	out := make([]barcodes.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, barcodes.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out, nil
}

func (r *barcodeRepo) CountDistinctMedications(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, m := range r.byID {
		seen[m.MedicationID] = struct{}{}
	}
	return len(seen), nil
}

func (r *barcodeRepo) newestFirst(keep func(barcodes.Mapping) bool) []barcodes.Mapping {
	out := make([]barcodes.Mapping, 0)
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, m)
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
