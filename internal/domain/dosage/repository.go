package dosage

import "context"

type Repository interface {
	Create(ctx context.Context, c Calculation) error
	GetByID(ctx context.Context, id string) (Calculation, error)
	Delete(ctx context.Context, id string) error
	DeleteByMedication(ctx context.Context, medicationID string) error

	// ListByMedication: más recientes primero.
	ListByMedication(ctx context.Context, medicationID string) ([]Calculation, error)
	List(ctx context.Context, filter ListFilter) ([]Calculation, int, error)

	Count(ctx context.Context) (int, error)
	TopIndications(ctx context.Context, limit int) ([]IndicationCount, error)
	AveragesByIndication(ctx context.Context) ([]IndicationAverage, error)
}
