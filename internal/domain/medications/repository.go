package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Medication, error)

	// List devuelve la página pedida y el total sin paginar. Orden: nombre asc.
	List(ctx context.Context, filter ListFilter) ([]Medication, int, error)
	Search(ctx context.Context, query string, limit int) ([]Medication, error)
	ListByForm(ctx context.Context, form Form) ([]Medication, error)

	Count(ctx context.Context) (int, error)
	CountByForm(ctx context.Context) ([]FormCount, error)
	CountByPrescription(ctx context.Context) ([]PrescriptionCount, error)
}

// DependentStore lo implementan los catálogos que referencian medicamentos
// (cálculos, barcodes). Delete los limpia antes de borrar la raíz.
type DependentStore interface {
	DeleteByMedication(ctx context.Context, medicationID string) error
}
