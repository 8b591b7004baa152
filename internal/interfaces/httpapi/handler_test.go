package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
	"github.com/riskibarqy/statsboard/internal/usecase"
)

type fakeIngestor struct {
	events []event.MatchEvent
	err    error
}

func (f *fakeIngestor) HandleEvent(ctx context.Context, ev event.MatchEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func newTestRouter(ingestor *fakeIngestor) http.Handler {
	return newRouter(NewHandler(ingestor, logging.NewNop()))
}

func TestHandleEventData(t *testing.T) {
	t.Parallel()

	ingestor := &fakeIngestor{}
	router := newTestRouter(ingestor)

	body := `{
		"id": "fx-1",
		"urlId": "170123456",
		"sportId": "1",
		"isPlaying": true,
		"currentPeriod": "45",
		"homeTeam": "Alpha",
		"stats": [{"type": "Goal", "period": "0", "name": "Alpha scored"}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/events/data", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"accepted"`)
	require.Len(t, ingestor.events, 1)
	require.Equal(t, "fx-1", ingestor.events[0].ID)
	require.Equal(t, "Alpha", ingestor.events[0].HomeTeam)
	require.Len(t, ingestor.events[0].Stats, 1)
}

func TestHandleEventDataBadJSON(t *testing.T) {
	t.Parallel()

	ingestor := &fakeIngestor{}
	router := newTestRouter(ingestor)

	req := httptest.NewRequest(http.MethodPost, "/events/data", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalidPayload")
	require.Empty(t, ingestor.events)
}

func TestHandleEventDataValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"isPlaying": true, "currentPeriod": "2"}`},
		{"bad team indicator", `{"id": "fx-1", "stats": [{"type": "Goal", "period": "0", "team": "3"}]}`},
		{"negative minute", `{"id": "fx-1", "stats": [{"type": "Goal", "period": "0", "minute": -4}]}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ingestor := &fakeIngestor{}
			router := newTestRouter(ingestor)

			req := httptest.NewRequest(http.MethodPost, "/events/data", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Empty(t, ingestor.events)
		})
	}
}

func TestHandleEventDataServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: bad fixture", usecase.ErrInvalidInput), http.StatusBadRequest},
		{"dependency down", fmt.Errorf("%w: queue full", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(&fakeIngestor{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/events/data", strings.NewReader(`{"id": "fx-1"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), `"domain":"statsboard"`)
		})
	}
}

func TestHandleHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeIngestor{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}
