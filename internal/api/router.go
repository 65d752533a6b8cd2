package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes and middleware
func NewRouter(h *Handler, corsOrigin string) *mux.Router {
	r := mux.NewRouter()

	r.Use(Recover)
	r.Use(RequestLogger)
	r.Use(CORS(corsOrigin))

	r.HandleFunc("/api/restaurant", h.Search).Methods("GET")
	r.HandleFunc("/api/restaurant/{slug}/rating", h.Rating).Methods("GET")
	r.HandleFunc("/api/restaurant/{slug}/reviews", h.Reviews).Methods("GET")
	r.HandleFunc("/api/restaurant/{slug}/info", h.Info).Methods("GET")
	r.HandleFunc("/api/health", h.Health).Methods("GET")

	// Router middleware does not run for unmatched routes, so the 404
	// handler gets the chain applied explicitly
	r.NotFoundHandler = Recover(RequestLogger(CORS(corsOrigin)(http.HandlerFunc(h.NotFound))))

	return r
}
