package medications

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"vet-medication-reference/internal/platform/httpjson"
	"vet-medication-reference/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc, log))
		mr.Post("/", createMedicationHandler(svc, log))

		// Rutas fijas antes de /{id}
		mr.Get("/search", searchMedicationsHandler(svc, log))
		mr.Get("/statistics", medicationStatisticsHandler(svc, log))
		mr.Get("/category/{form}", listByFormHandler(svc, log))

		mr.Get("/{id}", getMedicationHandler(svc, log))
		mr.Put("/{id}", updateMedicationHandler(svc, log))
		mr.Delete("/{id}", deleteMedicationHandler(svc, log))
	})
}

type createMedicationRequest struct {
	Name                 string           `json:"name"`
	ActiveIngredient     string           `json:"active_ingredient"`
	Strength             string           `json:"strength"`
	DosageAmount         *decimal.Decimal `json:"dosage_amount"`
	DosageUnit           DosageUnit       `json:"dosage_unit"`
	Category             Category         `json:"category" enums:"anesthetics,antibiotics,antiparasitics,eye_ointment,bronchodilators,supplementary_feed,ointment,expectorants,analgesics,vaccines,hormones,vitamins,other"`
	Form                 Form             `json:"form" enums:"tablet,capsule,drops,syrup,injection,paste,powder,ointment,spray"`
	Manufacturer         string           `json:"manufacturer"`
	Description          string           `json:"description"`
	SideEffects          string           `json:"side_effects"`
	Contraindications    string           `json:"contraindications"`
	Interactions         string           `json:"interactions"`
	Storage              string           `json:"storage"`
	PrescriptionRequired *bool            `json:"prescription_required"`
	DosageInstructions   []string         `json:"dosage_instructions"`
}

// updateMedicationRequest: punteros, nil = no tocar. dosage_amount admite null
// para limpiar (se detecta la presencia del campo aparte).
type updateMedicationRequest struct {
	Name                 *string          `json:"name"`
	ActiveIngredient     *string          `json:"active_ingredient"`
	Strength             *string          `json:"strength"`
	DosageAmount         *decimal.Decimal `json:"dosage_amount"`
	DosageUnit           *DosageUnit      `json:"dosage_unit"`
	Category             *Category        `json:"category"`
	Form                 *Form            `json:"form"`
	Manufacturer         *string          `json:"manufacturer"`
	Description          *string          `json:"description"`
	SideEffects          *string          `json:"side_effects"`
	Contraindications    *string          `json:"contraindications"`
	Interactions         *string          `json:"interactions"`
	Storage              *string          `json:"storage"`
	PrescriptionRequired *bool            `json:"prescription_required"`
	DosageInstructions   *[]string        `json:"dosage_instructions"`
}

// MedicationResponse es la representación pública de un medicamento.
type MedicationResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	ActiveIngredient     string           `json:"active_ingredient"`
	Strength             string           `json:"strength,omitempty"`
	DosageAmount         *decimal.Decimal `json:"dosage_amount,omitempty"`
	DosageUnit           DosageUnit       `json:"dosage_unit,omitempty"`
	DosageDisplay        string           `json:"dosage_display,omitempty"`
	Category             Category         `json:"category"`
	Form                 Form             `json:"form,omitempty"`
	Manufacturer         string           `json:"manufacturer,omitempty"`
	Description          string           `json:"description,omitempty"`
	SideEffects          string           `json:"side_effects,omitempty"`
	Contraindications    string           `json:"contraindications,omitempty"`
	Interactions         string           `json:"interactions,omitempty"`
	Storage              string           `json:"storage,omitempty"`
	PrescriptionRequired bool             `json:"prescription_required"`
	DosageInstructions   []string         `json:"dosage_instructions"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type medicationPageResponse struct {
	Medications []MedicationResponse `json:"medications"`
	TotalCount  int                  `json:"total_count"`
	TotalPages  int                  `json:"total_pages"`
	CurrentPage int                  `json:"current_page"`
}

type statisticsResponse struct {
	Total          int                 `json:"total"`
	ByForm         []formCountResponse `json:"by_form"`
	ByPrescription []rxCountResponse   `json:"by_prescription"`
}

type formCountResponse struct {
	Form  Form `json:"form"`
	Count int  `json:"count"`
}

type rxCountResponse struct {
	PrescriptionRequired bool `json:"prescription_required"`
	Count                int  `json:"count"`
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Lista paginada ordenada por nombre. `search` filtra por nombre, principio activo o fabricante.
// @Tags medications
// @Produce json
// @Param search query string false "Texto libre"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} medicationPageResponse
// @Failure 500 {object} httpjson.ErrorResponse
// @Router /api/medications [get]
func listMedicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := httpjson.ParsePage(r)
		p, err := svc.List(r.Context(), ListFilter{
			Search: r.URL.Query().Get("search"),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, medicationPageResponse{
			Medications: ToResponses(p.Items),
			TotalCount:  p.TotalCount,
			TotalPages:  p.TotalPages,
			CurrentPage: p.CurrentPage,
		})
	}
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Medicamento; name y active_ingredient obligatorios"
// @Success 201 {object} MedicationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/medications [post]
func createMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			Name:                 req.Name,
			ActiveIngredient:     req.ActiveIngredient,
			Strength:             req.Strength,
			DosageAmount:         nullDecimal(req.DosageAmount),
			DosageUnit:           req.DosageUnit,
			Category:             req.Category,
			Form:                 req.Form,
			Manufacturer:         req.Manufacturer,
			Description:          req.Description,
			SideEffects:          req.SideEffects,
			Contraindications:    req.Contraindications,
			Interactions:         req.Interactions,
			Storage:              req.Storage,
			PrescriptionRequired: req.PrescriptionRequired,
			DosageInstructions:   req.DosageInstructions,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, ToResponse(m))
	}
}

// searchMedicationsHandler godoc
// @Summary Buscar medicamentos
// @Description Máximo 10 resultados.
// @Tags medications
// @Produce json
// @Param q query string true "Término de búsqueda"
// @Success 200 {array} MedicationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/medications/search [get]
func searchMedicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponses(items))
	}
}

// medicationStatisticsHandler godoc
// @Summary Estadísticas del catálogo
// @Tags medications
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /api/medications/statistics [get]
func medicationStatisticsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Statistics(r.Context())
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		out := statisticsResponse{
			Total:          st.Total,
			ByForm:         make([]formCountResponse, 0, len(st.ByForm)),
			ByPrescription: make([]rxCountResponse, 0, len(st.ByPrescription)),
		}
		for _, f := range st.ByForm {
			out.ByForm = append(out.ByForm, formCountResponse{Form: f.Form, Count: f.Count})
		}
		for _, p := range st.ByPrescription {
			out.ByPrescription = append(out.ByPrescription, rxCountResponse{PrescriptionRequired: p.PrescriptionRequired, Count: p.Count})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// listByFormHandler godoc
// @Summary Medicamentos por forma farmacéutica
// @Tags medications
// @Produce json
// @Param form path string true "Forma (tablet, capsule, ...)"
// @Success 200 {array} MedicationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/medications/category/{form} [get]
func listByFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByForm(r.Context(), Form(chi.URLParam(r, "form")))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponses(items))
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param id path string true "ID del medicamento"
// @Success 200 {object} MedicationResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/medications/{id} [get]
func getMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento
// @Description Los campos omitidos no se modifican. `dosage_amount: null` limpia la cantidad.
// @Tags medications
// @Accept json
// @Produce json
// @Param id path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a modificar"
// @Success 200 {object} MedicationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/medications/{id} [put]
func updateMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Primero a map para saber si dosage_amount vino (y si vino null).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		var req updateMedicationRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				httpjson.BadRequest(w, "invalid json")
				return
			}
		}

		var amount *decimal.NullDecimal
		if v, ok := raw["dosage_amount"]; ok {
			if string(v) == "null" {
				amount = &decimal.NullDecimal{}
			} else {
				amount = &decimal.NullDecimal{Decimal: *req.DosageAmount, Valid: true}
			}
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Name:                 req.Name,
			ActiveIngredient:     req.ActiveIngredient,
			Strength:             req.Strength,
			DosageAmount:         amount,
			DosageUnit:           req.DosageUnit,
			Category:             req.Category,
			Form:                 req.Form,
			Manufacturer:         req.Manufacturer,
			Description:          req.Description,
			SideEffects:          req.SideEffects,
			Contraindications:    req.Contraindications,
			Interactions:         req.Interactions,
			Storage:              req.Storage,
			PrescriptionRequired: req.PrescriptionRequired,
			DosageInstructions:   req.DosageInstructions,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicamento
// @Description Borra también sus cálculos de dosis y barcodes.
// @Tags medications
// @Produce json
// @Param id path string true "ID del medicamento"
// @Success 200 {object} httpjson.MessageResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/medications/{id} [delete]
func deleteMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), id); err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		log.Info("medication deleted", map[string]any{"medication_id": id})
		httpjson.WriteMessage(w, http.StatusOK, "medication deleted")
	}
}

// ToResponse es exportado: barcodes y dosage embeben el medicamento en sus respuestas.
func ToResponse(m Medication) MedicationResponse {
	var amount *decimal.Decimal
	if m.DosageAmount.Valid {
		d := m.DosageAmount.Decimal
		amount = &d
	}
	instructions := m.DosageInstructions
	if instructions == nil {
		instructions = []string{}
	}
	return MedicationResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		ActiveIngredient:     m.ActiveIngredient,
		Strength:             m.Strength,
		DosageAmount:         amount,
		DosageUnit:           m.DosageUnit,
		DosageDisplay:        m.DosageDisplay(),
		Category:             m.Category,
		Form:                 m.Form,
		Manufacturer:         m.Manufacturer,
		Description:          m.Description,
		SideEffects:          m.SideEffects,
		Contraindications:    m.Contraindications,
		Interactions:         m.Interactions,
		Storage:              m.Storage,
		PrescriptionRequired: m.PrescriptionRequired,
		DosageInstructions:   instructions,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func ToResponses(items []Medication) []MedicationResponse {
	out := make([]MedicationResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToResponse(m))
	}
	return out
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
