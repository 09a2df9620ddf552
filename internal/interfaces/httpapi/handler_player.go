package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	name := r.PathValue("name")
	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	for _, p := range players {
		if p.Name != name {
			continue
		}

		average, err := h.playerService.AverageRating(ctx, name)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeSuccess(ctx, w, http.StatusOK, playerDetailDTO{
			Name:           p.Name,
			Characteristic: string(p.Characteristic),
			AverageRating:  average,
		})
		return
	}

	writeError(ctx, w, fmt.Errorf("%w: player=%s", usecase.ErrNotFound, name))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req addPlayerRequest
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

	p, err := h.playerService.AddPlayer(ctx, req.Name, player.Characteristic(req.Characteristic))
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) EditPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditPlayer")
	defer span.End()

	var req editPlayerRequest
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

	name := r.PathValue("name")
	modified, err := h.playerService.EditCharacteristic(ctx, name, player.Characteristic(req.Characteristic))
	if err != nil {
		h.logger.WarnContext(ctx, "edit player failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"modified": modified})
}
