package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler answers 200 when the database responds, 503 otherwise.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    map[string]string{"database": "healthy"},
		}
		status := http.StatusOK

		if err := db.HealthCheck(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		WriteSuccess(w, resp, status)
	}
}
