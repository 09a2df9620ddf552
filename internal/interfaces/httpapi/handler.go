package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/usecase"
)

type Handler struct {
	matchdayService *usecase.MatchdayService
	rankingService  *usecase.RankingService
	playerService   *usecase.PlayerService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	matchdayService *usecase.MatchdayService,
	rankingService *usecase.RankingService,
	playerService *usecase.PlayerService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		matchdayService: matchdayService,
		rankingService:  rankingService,
		playerService:   playerService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type ingestMatchdayRequest struct {
	Message string `json:"message" validate:"required"`
}

type submitRankingsRequest struct {
	Message string `json:"message" validate:"required"`
}

type addPlayerRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Characteristic string `json:"characteristic" validate:"required,oneof=GK DEF ATT ALL"`
}

type editPlayerRequest struct {
	Characteristic string `json:"characteristic" validate:"required,oneof=GK DEF ATT ALL"`
}

type teamMemberDTO struct {
	Name           string  `json:"name"`
	Characteristic string  `json:"characteristic"`
	Rating         float64 `json:"rating"`
}

type teamDTO struct {
	Members     []teamMemberDTO `json:"members"`
	TotalRating float64         `json:"totalRating"`
}

type matchdayDTO struct {
	Date     string    `json:"date"`
	Location string    `json:"location,omitempty"`
	Roster   []string  `json:"roster"`
	Teams    []teamDTO `json:"teams,omitempty"`
}

type playerDTO struct {
	Name           string `json:"name"`
	Characteristic string `json:"characteristic"`
}

type playerDetailDTO struct {
	Name           string  `json:"name"`
	Characteristic string  `json:"characteristic"`
	AverageRating  float64 `json:"averageRating"`
}

type submitRankingsDTO struct {
	Accepted []string `json:"accepted"`
	Dropped  []string `json:"dropped,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
	Modified bool     `json:"modified"`
}

func matchdayToDTO(m matchday.Matchday) matchdayDTO {
	dto := matchdayDTO{
		Date:     matchday.FormatDate(m.Date),
		Location: m.Location,
		Roster:   m.Roster,
	}
	if dto.Roster == nil {
		dto.Roster = []string{}
	}
	for _, team := range m.Teams {
		members := make([]teamMemberDTO, 0, len(team.Members))
		for _, member := range team.Members {
			members = append(members, teamMemberDTO{
				Name:           member.Name,
				Characteristic: string(member.Characteristic),
				Rating:         member.Rating,
			})
		}
		dto.Teams = append(dto.Teams, teamDTO{Members: members, TotalRating: team.TotalRating})
	}

	return dto
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		Name:           p.Name,
		Characteristic: string(p.Characteristic),
	}
}
