package dosage

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/middleware"
	"vet-medication-reference/internal/platform/httpjson"
	"vet-medication-reference/internal/platform/logger"
	"vet-medication-reference/internal/platform/metrics"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, mc *metrics.Collector) {
	r.Route("/api/dosage", func(dr chi.Router) {
		dr.Get("/", listCalculationsHandler(svc, log))
		dr.Get("/statistics", dosageStatisticsHandler(svc, log))
		dr.Get("/history/{medicationID}", historyHandler(svc, log))

		dr.Post("/calculate", calculateHandler(svc, log, mc))
		dr.Post("/pediatric/{medicationID}", pediatricHandler(svc, log))

		dr.Get("/{id}", getCalculationHandler(svc, log))
		dr.Delete("/{id}", deleteCalculationHandler(svc, log))
	})
}

type calculateRequest struct {
	MedicationID  string           `json:"medication_id"`
	PatientWeight decimal.Decimal  `json:"patient_weight" swaggertype:"string" example:"10.5"`
	PatientAge    *int             `json:"patient_age"`
	Indication    string           `json:"indication"`
	DosePerKg     decimal.Decimal  `json:"dose_per_kg" swaggertype:"string" example:"5"`
	MaxDailyDose  *decimal.Decimal `json:"max_daily_dose" swaggertype:"string"`
	Frequency     int              `json:"frequency" example:"2"`
	Unit          string           `json:"unit" example:"mg"`
	CalculatedBy  string           `json:"calculated_by"`
	Notes         string           `json:"notes"`
}

type pediatricRequest struct {
	Weight decimal.Decimal `json:"weight" swaggertype:"string" example:"12"`
	Age    int             `json:"age" example:"36"`
}

type CalculationResponse struct {
	ID             string           `json:"id"`
	MedicationID   string           `json:"medication_id"`
	PatientWeight  decimal.Decimal  `json:"patient_weight" swaggertype:"string"`
	PatientAge     *int             `json:"patient_age,omitempty"`
	Indication     string           `json:"indication"`
	DosePerKg      decimal.Decimal  `json:"dose_per_kg" swaggertype:"string"`
	MaxDailyDose   *decimal.Decimal `json:"max_daily_dose,omitempty" swaggertype:"string"`
	Frequency      int              `json:"frequency"`
	CalculatedDose decimal.Decimal  `json:"calculated_dose" swaggertype:"string"`
	Unit           string           `json:"unit"`
	CalculatedBy   string           `json:"calculated_by,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type recommendationResponse struct {
	SingleDose     decimal.Decimal `json:"single_dose" swaggertype:"string"`
	DailyDose      decimal.Decimal `json:"daily_dose" swaggertype:"string"`
	TotalDailyDose decimal.Decimal `json:"total_daily_dose" swaggertype:"string"`
	Frequency      int             `json:"frequency"`
	Unit           string          `json:"unit"`
	Warning        *string         `json:"warning"`
}

type calculateResponse struct {
	Calculation     CalculationResponse    `json:"calculation"`
	Recommendations recommendationResponse `json:"recommendations"`
}

type pediatricResponse struct {
	Medication struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"medication"`
	PatientWeight   decimal.Decimal `json:"patient_weight" swaggertype:"string"`
	PatientAge      int             `json:"patient_age"`
	PediatricDosage struct {
		RecommendedDose decimal.Decimal `json:"recommended_dose" swaggertype:"string"`
		MaxDailyDose    decimal.Decimal `json:"max_daily_dose" swaggertype:"string"`
		Unit            string          `json:"unit"`
	} `json:"pediatric_dosage"`
	CalculatedSingleDose decimal.Decimal `json:"calculated_single_dose" swaggertype:"string"`
	CalculatedDailyDose  decimal.Decimal `json:"calculated_daily_dose" swaggertype:"string"`
}

type calculationPageResponse struct {
	Calculations []CalculationResponse `json:"calculations"`
	TotalCount   int                   `json:"total_count"`
	TotalPages   int                   `json:"total_pages"`
	CurrentPage  int                   `json:"current_page"`
}

type statisticsResponse struct {
	TotalCalculations int                  `json:"total_calculations"`
	TopIndications    []indicationCountDTO `json:"top_indications"`
	AverageDoses      []indicationAvgDTO   `json:"average_doses"`
}

type indicationCountDTO struct {
	Indication string `json:"indication"`
	Count      int    `json:"count"`
}

type indicationAvgDTO struct {
	Indication string          `json:"indication"`
	AvgDose    decimal.Decimal `json:"avg_dose" swaggertype:"string"`
	AvgWeight  decimal.Decimal `json:"avg_weight" swaggertype:"string"`
}

// calculateHandler godoc
// @Summary Calcular dosis
// @Description Calcula la dosis por peso y registra el cálculo. Si la dosis diaria supera `max_daily_dose` se recorta y se devuelve un warning.
// @Tags dosage
// @Accept json
// @Produce json
// @Param payload body calculateRequest true "Datos del paciente y del régimen"
// @Success 201 {object} calculateResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/dosage/calculate [post]
func calculateHandler(svc *Service, log logger.Logger, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculateRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		// Si no lo mandan, se atribuye al usuario autenticado.
		by := req.CalculatedBy
		if by == "" {
			if c, ok := middleware.GetClaims(r.Context()); ok {
				by = c.UserID
			}
		}

		var ceiling decimal.NullDecimal
		if req.MaxDailyDose != nil {
			ceiling = decimal.NullDecimal{Decimal: *req.MaxDailyDose, Valid: true}
		}

		res, err := svc.Calculate(r.Context(), CalculateInput{
			MedicationID:  req.MedicationID,
			PatientWeight: req.PatientWeight,
			PatientAge:    req.PatientAge,
			Indication:    req.Indication,
			DosePerKg:     req.DosePerKg,
			MaxDailyDose:  ceiling,
			Frequency:     req.Frequency,
			Unit:          req.Unit,
			CalculatedBy:  by,
			Notes:         req.Notes,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		mc.ObserveCalculation(res.Recommendation.Clamped())
		if res.Recommendation.Clamped() {
			log.Warn("dose clamped to daily ceiling", map[string]any{
				"calculation_id": res.Calculation.ID,
				"medication_id":  res.Calculation.MedicationID,
			})
		}

		httpjson.Write(w, http.StatusCreated, calculateResponse{
			Calculation:     ToResponse(res.Calculation),
			Recommendations: toRecommendationResponse(res.Recommendation),
		})
	}
}

// pediatricHandler godoc
// @Summary Dosis pediátrica de referencia
// @Description Usa la tabla pediátrica por principio activo. Si el principio activo no está en la tabla responde 404 con code `not_available`.
// @Tags dosage
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body pediatricRequest true "Peso (kg) y edad (meses)"
// @Success 200 {object} pediatricResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/dosage/pediatric/{medicationID} [post]
func pediatricHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pediatricRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		p, err := svc.Pediatric(r.Context(), chi.URLParam(r, "medicationID"), req.Weight, req.Age)
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		var out pediatricResponse
		out.Medication.ID = p.MedicationID
		out.Medication.Name = p.MedicationName
		out.PatientWeight = p.PatientWeight
		out.PatientAge = p.PatientAge
		out.PediatricDosage.RecommendedDose = p.RecommendedDose
		out.PediatricDosage.MaxDailyDose = p.MaxDailyDose
		out.PediatricDosage.Unit = p.Unit
		out.CalculatedSingleDose = p.CalculatedSingleDose
		out.CalculatedDailyDose = p.CalculatedDailyDose
		httpjson.Write(w, http.StatusOK, out)
	}
}

// listCalculationsHandler godoc
// @Summary Listar cálculos
// @Tags dosage
// @Produce json
// @Param medication_id query string false "Filtrar por medicamento"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} calculationPageResponse
// @Router /api/dosage [get]
func listCalculationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := httpjson.ParsePage(r)
		p, err := svc.List(r.Context(), ListFilter{
			MedicationID: r.URL.Query().Get("medication_id"),
			Page:         page,
			Limit:        limit,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, calculationPageResponse{
			Calculations: ToResponses(p.Items),
			TotalCount:   p.TotalCount,
			TotalPages:   p.TotalPages,
			CurrentPage:  p.CurrentPage,
		})
	}
}

// historyHandler godoc
// @Summary Historial de cálculos de un medicamento
// @Tags dosage
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {array} CalculationResponse
// @Router /api/dosage/history/{medicationID} [get]
func historyHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponses(items))
	}
}

// dosageStatisticsHandler godoc
// @Summary Estadísticas de cálculos
// @Tags dosage
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /api/dosage/statistics [get]
func dosageStatisticsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Statistics(r.Context())
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		out := statisticsResponse{
			TotalCalculations: st.TotalCalculations,
			TopIndications:    make([]indicationCountDTO, 0, len(st.TopIndications)),
			AverageDoses:      make([]indicationAvgDTO, 0, len(st.AverageDoses)),
		}
		for _, t := range st.TopIndications {
			out.TopIndications = append(out.TopIndications, indicationCountDTO{Indication: t.Indication, Count: t.Count})
		}
		for _, a := range st.AverageDoses {
			out.AverageDoses = append(out.AverageDoses, indicationAvgDTO{
				Indication: a.Indication,
				AvgDose:    a.AvgDose,
				AvgWeight:  a.AvgWeight,
			})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// getCalculationHandler godoc
// @Summary Obtener cálculo
// @Tags dosage
// @Produce json
// @Param id path string true "ID del cálculo"
// @Success 200 {object} CalculationResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/dosage/{id} [get]
func getCalculationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(c))
	}
}

// deleteCalculationHandler godoc
// @Summary Borrar cálculo
// @Tags dosage
// @Produce json
// @Param id path string true "ID del cálculo"
// @Success 200 {object} httpjson.MessageResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/dosage/{id} [delete]
func deleteCalculationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.WriteMessage(w, http.StatusOK, "dosage calculation deleted")
	}
}

func ToResponse(c Calculation) CalculationResponse {
	var ceiling *decimal.Decimal
	if c.MaxDailyDose.Valid {
		d := c.MaxDailyDose.Decimal
		ceiling = &d
	}
	return CalculationResponse{
		ID:             c.ID,
		MedicationID:   c.MedicationID,
		PatientWeight:  c.PatientWeight,
		PatientAge:     c.PatientAge,
		Indication:     c.Indication,
		DosePerKg:      c.DosePerKg,
		MaxDailyDose:   ceiling,
		Frequency:      c.Frequency,
		CalculatedDose: c.CalculatedDose,
		Unit:           c.Unit,
		CalculatedBy:   c.CalculatedBy,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
	}
}

func ToResponses(items []Calculation) []CalculationResponse {
	out := make([]CalculationResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToResponse(c))
	}
	return out
}

func toRecommendationResponse(rec Recommendation) recommendationResponse {
	return recommendationResponse{
		SingleDose:     rec.SingleDose,
		DailyDose:      rec.DailyDose,
		TotalDailyDose: rec.TotalDailyDose,
		Frequency:      rec.Frequency,
		Unit:           rec.Unit,
		Warning:        rec.Warning,
	}
}
