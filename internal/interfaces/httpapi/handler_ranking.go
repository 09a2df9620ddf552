package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/usecase"
)

func (h *Handler) GetRankingTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRankingTemplate")
	defer span.End()

	template, err := h.rankingService.Template(ctx, r.PathValue("rankerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"template": template})
}

func (h *Handler) SubmitRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRankings")
	defer span.End()

	var req submitRankingsRequest
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

	result, err := h.rankingService.Submit(ctx, r.PathValue("rankerID"), req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "submit rankings failed", "ranker_id", r.PathValue("rankerID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	accepted := result.Accepted
	if accepted == nil {
		accepted = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, submitRankingsDTO{
		Accepted: accepted,
		Dropped:  result.Dropped,
		Skipped:  result.Skipped,
		Modified: result.Modified,
	})
}
