package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// Messages returned in the detail field of 400 responses.
const (
	DetailNoCharacterSet = "No character set selected."
	DetailInvalidLength  = "Password length must be greater than 0."
	detailTooLongFormat  = "Password length must be at most %d."
)

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
	logger  *slog.Logger
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService, logger *slog.Logger) *GeneratorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratorHandler{service: svc, logger: logger}
}

// HandleGenerate handles POST /generate-password requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		status, detail := classify(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("password generation failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
		}
		writeJSON(w, status, errorResponse(detail))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// classify maps a generation error to its HTTP status and client message.
func classify(err error) (int, string) {
	var limitErr *service.LengthLimitError

	switch {
	case errors.Is(err, crypto.ErrNoCharacterSetSelected):
		return http.StatusBadRequest, DetailNoCharacterSet
	case errors.Is(err, crypto.ErrInvalidLength):
		return http.StatusBadRequest, DetailInvalidLength
	case errors.As(err, &limitErr):
		return http.StatusBadRequest, fmt.Sprintf(detailTooLongFormat, limitErr.Max)
	case errors.Is(err, service.ErrMissingField):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleHealth handles GET /health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) model.ErrorResponse {
	return model.ErrorResponse{Detail: msg}
}
