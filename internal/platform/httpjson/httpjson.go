// Package httpjson junta los helpers que antes estaban duplicados en cada
// handler (writeJSON). Con tres módulos ya valía la pena extraerlos.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vet-medication-reference/internal/platform/apperr"
	"vet-medication-reference/internal/platform/logger"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 200
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	Write(w, status, MessageResponse{Message: msg})
}

// WriteError traduce el kind del error a status. Lo no clasificado es 500 y
// se loguea; el detalle no sale al cliente.
func WriteError(w http.ResponseWriter, log logger.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", map[string]any{"err": err})
		}
		Write(w, status, ErrorResponse{Error: "internal error"})
		return
	}
	Write(w, status, ErrorResponse{Error: err.Error(), Code: apperr.Code(err)})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrNotAvailable):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(w http.ResponseWriter, msg string) {
	Write(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: "invalid_argument"})
}

// Decode lee el body JSON rechazando campos desconocidos.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ParsePage lee page/limit con defaults 1/10; valores inválidos caen al default.
func ParsePage(r *http.Request) (page, limit int) {
	page, limit = DefaultPage, DefaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
			limit = n
		}
	}
	return page, limit
}

// TotalPages = ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
