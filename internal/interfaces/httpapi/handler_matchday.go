package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/usecase"
)

func (h *Handler) IngestMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestMatchday")
	defer span.End()

	var req ingestMatchdayRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchdayService.Ingest(ctx, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest matchday failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchdayToDTO(m))
}

func (h *Handler) GetMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchday")
	defer span.End()

	date, err := matchday.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchdayService.Get(ctx, date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayToDTO(m))
}

func (h *Handler) GetMatchdaySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchdaySummary")
	defer span.End()

	date, err := matchday.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.matchdayService.Summary(ctx, date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"summary": summary})
}

// GenerateTeams schedules balancing for the matchday and returns 202. The
// generated teams land on GET /v1/matchdays/{date} once the run finishes.
func (h *Handler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateTeams")
	defer span.End()

	date, err := matchday.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchdayService.GenerateTeams(ctx, date); err != nil {
		h.logger.WarnContext(ctx, "generate teams failed", "date", r.PathValue("date"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
