package httpapi

import "net/http"

func newRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /events/data", h.handleEventData)
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	return mux
}
