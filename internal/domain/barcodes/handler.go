package barcodes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-medication-reference/internal/domain/medications"
	"vet-medication-reference/internal/platform/apperr"
	"vet-medication-reference/internal/platform/httpjson"
	"vet-medication-reference/internal/platform/logger"
	"vet-medication-reference/internal/platform/metrics"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, mc *metrics.Collector) {
	r.Route("/api/barcode", func(br chi.Router) {
		br.Get("/", listBarcodesHandler(svc, log))
		br.Post("/", createBarcodeHandler(svc, log, mc))

		br.Get("/search", searchBarcodesHandler(svc, log))
		br.Get("/statistics", barcodeStatisticsHandler(svc, log))
		br.Get("/scan/{barcode}", scanBarcodeHandler(svc, log, mc))
		br.Get("/medication/{medicationID}", listByMedicationHandler(svc, log))
		br.Post("/validate", validateBarcodeHandler(svc))
		br.Post("/bulk-import", bulkImportHandler(svc, log, mc))

		br.Get("/{id}", getBarcodeHandler(svc, log))
		br.Put("/{id}", updateBarcodeHandler(svc, log, mc))
		br.Delete("/{id}", deleteBarcodeHandler(svc, log))
	})
}

type createBarcodeRequest struct {
	MedicationID string    `json:"medication_id"`
	Barcode      string    `json:"barcode" example:"4012345678901"`
	BarcodeType  Symbology `json:"barcode_type" enums:"EAN-13,UPC,Code128,DataMatrix"`
	PZN          string    `json:"pzn"`
	PackageSize  string    `json:"package_size"`
	BatchNumber  string    `json:"batch_number"`
	ExpiryDate   *string   `json:"expiry_date" example:"2027-06-30"`
}

type updateBarcodeRequest struct {
	MedicationID *string    `json:"medication_id"`
	Barcode      *string    `json:"barcode"`
	BarcodeType  *Symbology `json:"barcode_type"`
	PZN          *string    `json:"pzn"`
	PackageSize  *string    `json:"package_size"`
	BatchNumber  *string    `json:"batch_number"`
	ExpiryDate   *string    `json:"expiry_date"`
}

type validateRequest struct {
	Barcode     string    `json:"barcode"`
	BarcodeType Symbology `json:"barcode_type"`
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type bulkImportRequest struct {
	Barcodes []createBarcodeRequest `json:"barcodes"`
}

type bulkErrorResponse struct {
	Index int                  `json:"index"`
	Data  createBarcodeRequest `json:"data"`
	Error string               `json:"error"`
}

type bulkImportResponse struct {
	Success []MappingResponse   `json:"success"`
	Errors  []bulkErrorResponse `json:"errors"`
}

type MappingResponse struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	Barcode      string     `json:"barcode"`
	BarcodeType  Symbology  `json:"barcode_type"`
	PZN          string     `json:"pzn,omitempty"`
	PackageSize  string     `json:"package_size,omitempty"`
	BatchNumber  string     `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type scanResponse struct {
	Barcode    MappingResponse                `json:"barcode"`
	Medication medications.MedicationResponse `json:"medication"`
	ScanTime   time.Time                      `json:"scan_time"`
}

type mappingPageResponse struct {
	BarcodeMappings []MappingResponse `json:"barcode_mappings"`
	TotalCount      int               `json:"total_count"`
	TotalPages      int               `json:"total_pages"`
	CurrentPage     int               `json:"current_page"`
}

type statisticsResponse struct {
	TotalBarcodes              int                 `json:"total_barcodes"`
	ByType                     []typeCountResponse `json:"by_type"`
	MedicationsWithBarcodes    int                 `json:"medications_with_barcodes"`
	MedicationsWithoutBarcodes int                 `json:"medications_without_barcodes"`
}

type typeCountResponse struct {
	BarcodeType Symbology `json:"barcode_type"`
	Count       int       `json:"count"`
}

// listBarcodesHandler godoc
// @Summary Listar barcodes
// @Tags barcode
// @Produce json
// @Param medication_id query string false "Filtrar por medicamento"
// @Param barcode_type query string false "Filtrar por simbología"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} mappingPageResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/barcode [get]
func listBarcodesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := httpjson.ParsePage(r)
		q := r.URL.Query()
		p, err := svc.List(r.Context(), ListFilter{
			MedicationID: q.Get("medication_id"),
			Type:         Symbology(q.Get("barcode_type")),
			Page:         page,
			Limit:        limit,
		})
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, mappingPageResponse{
			BarcodeMappings: ToResponses(p.Items),
			TotalCount:      p.TotalCount,
			TotalPages:      p.TotalPages,
			CurrentPage:     p.CurrentPage,
		})
	}
}

// createBarcodeHandler godoc
// @Summary Registrar barcode
// @Description Valida formato, existencia del medicamento y unicidad del barcode (en ese orden).
// @Tags barcode
// @Accept json
// @Produce json
// @Param payload body createBarcodeRequest true "Mapping"
// @Success 201 {object} MappingResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /api/barcode [post]
func createBarcodeHandler(svc *Service, log logger.Logger, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBarcodeRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		in, err := req.toInput()
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}

		m, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				mc.ObserveConflict()
			}
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, ToResponse(m))
	}
}

// searchBarcodesHandler godoc
// @Summary Buscar barcodes
// @Description Busca en barcode, PZN y tamaño de envase. Máximo 10 resultados.
// @Tags barcode
// @Produce json
// @Param q query string true "Término de búsqueda"
// @Success 200 {array} MappingResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/barcode/search [get]
func searchBarcodesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponses(items))
	}
}

// barcodeStatisticsHandler godoc
// @Summary Estadísticas de barcodes
// @Tags barcode
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /api/barcode/statistics [get]
func barcodeStatisticsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Statistics(r.Context())
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		out := statisticsResponse{
			TotalBarcodes:              st.TotalBarcodes,
			ByType:                     make([]typeCountResponse, 0, len(st.ByType)),
			MedicationsWithBarcodes:    st.MedicationsWithBarcodes,
			MedicationsWithoutBarcodes: st.MedicationsWithoutBarcodes,
		}
		for _, t := range st.ByType {
			out.ByType = append(out.ByType, typeCountResponse{BarcodeType: t.Type, Count: t.Count})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// scanBarcodeHandler godoc
// @Summary Escanear barcode
// @Description Resuelve un barcode al medicamento que identifica.
// @Tags barcode
// @Produce json
// @Param barcode path string true "Valor del barcode"
// @Success 200 {object} scanResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/barcode/scan/{barcode} [get]
func scanBarcodeHandler(svc *Service, log logger.Logger, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Scan(r.Context(), chi.URLParam(r, "barcode"))
		if err != nil {
			if errors.Is(err, ErrBarcodeNotFound) {
				mc.ObserveScan(false)
			}
			httpjson.WriteError(w, log, err)
			return
		}
		mc.ObserveScan(true)
		httpjson.Write(w, http.StatusOK, scanResponse{
			Barcode:    ToResponse(res.Mapping),
			Medication: medications.ToResponse(res.Medication),
			ScanTime:   res.ScannedAt,
		})
	}
}

// listByMedicationHandler godoc
// @Summary Barcodes de un medicamento
// @Tags barcode
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {array} MappingResponse
// @Router /api/barcode/medication/{medicationID} [get]
func listByMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByMedication(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponses(items))
	}
}

// validateBarcodeHandler godoc
// @Summary Validar formato de barcode
// @Description No consulta el catálogo.
// @Tags barcode
// @Accept json
// @Produce json
// @Param payload body validateRequest true "Barcode y simbología"
// @Success 200 {object} validateResponse
// @Failure 400 {object} validateResponse
// @Router /api/barcode/validate [post]
func validateBarcodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Write(w, http.StatusBadRequest, validateResponse{Valid: false, Error: "invalid json"})
			return
		}
		if err := svc.Validate(req.Barcode, req.BarcodeType); err != nil {
			httpjson.Write(w, http.StatusBadRequest, validateResponse{Valid: false, Error: err.Error()})
			return
		}
		httpjson.Write(w, http.StatusOK, validateResponse{Valid: true})
	}
}

// bulkImportHandler godoc
// @Summary Importar barcodes en lote
// @Description Cada item se procesa por separado; los que fallan se devuelven en `errors`.
// @Tags barcode
// @Accept json
// @Produce json
// @Param payload body bulkImportRequest true "Lista de mappings"
// @Success 201 {object} bulkImportResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /api/barcode/bulk-import [post]
func bulkImportHandler(svc *Service, log logger.Logger, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkImportRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		if len(req.Barcodes) == 0 {
			httpjson.BadRequest(w, "barcodes must be a non-empty array")
			return
		}

		out := bulkImportResponse{
			Success: []MappingResponse{},
			Errors:  []bulkErrorResponse{},
		}

		// Los items con fecha ilegible se rechazan acá; el resto va al servicio.
		inputs := make([]CreateInput, 0, len(req.Barcodes))
		positions := make([]int, 0, len(req.Barcodes))
		for i, item := range req.Barcodes {
			in, err := item.toInput()
			if err != nil {
				out.Errors = append(out.Errors, bulkErrorResponse{Index: i, Data: item, Error: err.Error()})
				continue
			}
			inputs = append(inputs, in)
			positions = append(positions, i)
		}

		if len(inputs) > 0 {
			res, err := svc.BulkImport(r.Context(), inputs)
			if err != nil {
				httpjson.WriteError(w, log, err)
				return
			}
			out.Success = ToResponses(res.Imported)
			for _, f := range res.Failed {
				idx := positions[f.Index]
				msg := f.Err.Error()
				switch {
				case errors.Is(f.Err, apperr.ErrConflict):
					mc.ObserveConflict()
				case apperr.Code(f.Err) == "":
					log.Error("bulk import item failed", map[string]any{"index": idx, "err": f.Err})
					msg = "internal error"
				}
				out.Errors = append(out.Errors, bulkErrorResponse{Index: idx, Data: req.Barcodes[idx], Error: msg})
			}
		}

		log.Info("bulk barcode import", map[string]any{
			"imported": len(out.Success),
			"failed":   len(out.Errors),
		})
		httpjson.Write(w, http.StatusCreated, out)
	}
}

// getBarcodeHandler godoc
// @Summary Obtener mapping
// @Tags barcode
// @Produce json
// @Param id path string true "ID del mapping"
// @Success 200 {object} MappingResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/barcode/{id} [get]
func getBarcodeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(m))
	}
}

// updateBarcodeHandler godoc
// @Summary Actualizar mapping
// @Description Los campos omitidos no se modifican. `expiry_date: null` limpia la fecha.
// @Tags barcode
// @Accept json
// @Produce json
// @Param id path string true "ID del mapping"
// @Param payload body updateBarcodeRequest true "Campos a modificar"
// @Success 200 {object} MappingResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /api/barcode/{id} [put]
func updateBarcodeHandler(svc *Service, log logger.Logger, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpjson.BadRequest(w, "invalid json")
			return
		}

		var req updateBarcodeRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				httpjson.BadRequest(w, "invalid json")
				return
			}
		}

		in := UpdateInput{
			MedicationID: req.MedicationID,
			Barcode:      req.Barcode,
			Type:         req.BarcodeType,
			PZN:          req.PZN,
			PackageSize:  req.PackageSize,
			BatchNumber:  req.BatchNumber,
		}
		if v, ok := raw["expiry_date"]; ok {
			if string(v) == "null" {
				in.ClearExpiryDate = true
			} else {
				t, err := parseDate(*req.ExpiryDate)
				if err != nil {
					httpjson.WriteError(w, log, err)
					return
				}
				in.ExpiryDate = &t
			}
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				mc.ObserveConflict()
			}
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(m))
	}
}

// deleteBarcodeHandler godoc
// @Summary Borrar mapping
// @Tags barcode
// @Produce json
// @Param id path string true "ID del mapping"
// @Success 200 {object} httpjson.MessageResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /api/barcode/{id} [delete]
func deleteBarcodeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			httpjson.WriteError(w, log, err)
			return
		}
		httpjson.WriteMessage(w, http.StatusOK, "barcode mapping deleted")
	}
}

func (req createBarcodeRequest) toInput() (CreateInput, error) {
	in := CreateInput{
		MedicationID: req.MedicationID,
		Barcode:      req.Barcode,
		Type:         req.BarcodeType,
		PZN:          req.PZN,
		PackageSize:  req.PackageSize,
		BatchNumber:  req.BatchNumber,
	}
	if req.ExpiryDate != nil && strings.TrimSpace(*req.ExpiryDate) != "" {
		t, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return CreateInput{}, err
		}
		in.ExpiryDate = &t
	}
	return in, nil
}

// parseDate acepta fecha sola (2006-01-02) o RFC3339.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, apperr.Invalid("expiry_date must be an ISO 8601 date")
	}
	return t.UTC(), nil
}

func ToResponse(m Mapping) MappingResponse {
	return MappingResponse{
		ID:           m.ID,
		MedicationID: m.MedicationID,
		Barcode:      m.Barcode,
		BarcodeType:  m.Type,
		PZN:          m.PZN,
		PackageSize:  m.PackageSize,
		BatchNumber:  m.BatchNumber,
		ExpiryDate:   m.ExpiryDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToResponses(items []Mapping) []MappingResponse {
	out := make([]MappingResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToResponse(m))
	}
	return out
}
