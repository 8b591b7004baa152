package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

// EventIngestor admits match events into the processing pipeline.
type EventIngestor interface {
	HandleEvent(ctx context.Context, ev event.MatchEvent) error
}

type Handler struct {
	ingestor EventIngestor
	validate *validator.Validate
	log      *logging.Logger
}

func NewHandler(ingestor EventIngestor, log *logging.Logger) *Handler {
	return &Handler{
		ingestor: ingestor,
		validate: validator.New(),
		log:      log,
	}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}
