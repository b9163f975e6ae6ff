package statement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/statement-atlas/pkg/adapters"
	"github.com/de-tools/statement-atlas/pkg/models/api"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc statement.Service
}

func NewHandler(svc statement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := h.svc.ListTypes()
	response := make([]api.ReportType, 0, len(types))
	for _, t := range types {
		response = append(response, api.ReportType{Name: t})
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	reportType := chi.URLParam(r, "type")
	period := chi.URLParam(r, "period")

	report, err := h.svc.Generate(ctx, reportType, period)
	if err != nil {
		status, body := errorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("report_type", reportType).
				Str("period", period).
				Msg("failed to generate statement")
		}
		writeJSON(w, r, status, body)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapDomainReportToAPI(report))
}

func errorResponse(err error) (int, api.Error) {
	if ve, ok := statement.AsValidationError(err); ok {
		discrepancy := ve.Discrepancy
		return http.StatusUnprocessableEntity, api.Error{
			Error:       ve.Error(),
			Rule:        ve.Rule,
			Discrepancy: &discrepancy,
		}
	}
	switch {
	case errors.Is(err, statement.ErrUnknownReportType), errors.Is(err, source.ErrNoData):
		return http.StatusNotFound, api.Error{Error: err.Error()}
	default:
		return http.StatusInternalServerError, api.Error{Error: "failed to generate statement"}
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
