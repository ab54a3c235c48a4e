package barcodes

import "context"

// Repository: Create y Update devuelven apperr.ErrConflict si el barcode ya
// está registrado en otro mapping. Esa es la garantía real de unicidad; el
// chequeo previo del servicio solo da un error más temprano.
type Repository interface {
	Create(ctx context.Context, m Mapping) error
	Update(ctx context.Context, m Mapping) error
	Delete(ctx context.Context, id string) error
	DeleteByMedication(ctx context.Context, medicationID string) error

	GetByID(ctx context.Context, id string) (Mapping, error)
	FindByBarcode(ctx context.Context, barcode string) (Mapping, error)

	// Orden: más recientes primero.
	ListByMedication(ctx context.Context, medicationID string) ([]Mapping, error)
	List(ctx context.Context, filter ListFilter) ([]Mapping, int, error)
	Search(ctx context.Context, query string, limit int) ([]Mapping, error)

	Count(ctx context.Context) (int, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	CountDistinctMedications(ctx context.Context) (int, error)
}
