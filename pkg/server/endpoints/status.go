package endpoints

import (
	"net/http"
	"os"

	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// StatusResponse reports server health and version.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusErrorResponse reports a failed health check.
type StatusErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// RegisterStatusEndpoints registers the health endpoint (no auth required).
func RegisterStatusEndpoints(srv *server.Server) {
	srv.Router.HandleFunc("/status", handleStatus(srv.HealthStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("BOOKSHELF_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusErrorResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
