package httpapi

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/statsboard/internal/domain/event"
)

const maxEventBodyBytes = 1 << 20

type eventRequest struct {
	ID            string        `json:"id" validate:"required"`
	URLID         string        `json:"urlId"`
	SportID       string        `json:"sportId"`
	IsPlaying     bool          `json:"isPlaying"`
	CurrentPeriod string        `json:"currentPeriod"`
	HomeTeam      string        `json:"homeTeam"`
	AwayTeam      string        `json:"awayTeam"`
	Stats         []statRequest `json:"stats" validate:"dive"`
}

type statRequest struct {
	Type   string `json:"type"`
	Period string `json:"period"`
	Team   string `json:"team" validate:"omitempty,oneof=1 2"`
	Name   string `json:"name"`
	Minute int    `json:"minute" validate:"omitempty,gte=0"`
}

func (req eventRequest) toDomain() event.MatchEvent {
	stats := make([]event.Stat, 0, len(req.Stats))
	for _, s := range req.Stats {
		stats = append(stats, event.Stat{
			Type:   s.Type,
			Period: s.Period,
			Team:   s.Team,
			Name:   s.Name,
			Minute: s.Minute,
		})
	}

	return event.MatchEvent{
		ID:            req.ID,
		URLID:         req.URLID,
		SportID:       req.SportID,
		IsPlaying:     req.IsPlaying,
		CurrentPeriod: req.CurrentPeriod,
		HomeTeam:      req.HomeTeam,
		AwayTeam:      req.AwayTeam,
		Stats:         stats,
	}
}

func (h *Handler) handleEventData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "Handler.handleEventData")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalidPayload", "unable to read request body")
		return
	}

	var req eventRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalidPayload", "request body is not valid JSON")
		return
	}

	if err := h.validate.StructCtx(ctx, req); err != nil {
		respondError(w, http.StatusBadRequest, "validationFailed", err.Error())
		return
	}

	if err := h.ingestor.HandleEvent(ctx, req.toDomain()); err != nil {
		h.log.ErrorContext(ctx, "event ingestion failed", "fixture_id", req.ID, "error", err)
		respondUsecaseError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{"status": "accepted"})
}
