package api

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
)

// messageResponse is the minimal success/failure shape shared by every endpoint
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// healthCheckHandler reports liveness and database reachability
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"

	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Error("Health check database ping failed", "error", err)
		status = "degraded"
	}

	s.respondWithJSON(w, http.StatusOK, healthResponse{
		Status:    status,
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithFailure(w, http.StatusNotFound, "Resource not found")
}

// methodNotAllowedHandler answers any verb a route does not accept.
// Endpoints take POST or GET only.
func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// respondWithError maps a service error to its HTTP status and the uniform
// failure shape. Unrecognized errors are masked as internal failures.
func (s *Server) respondWithError(w http.ResponseWriter, err error) {
	s.respondWithFailure(w, apperrors.StatusCode(err), err.Error())
}

func (s *Server) respondWithFailure(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, messageResponse{
		Success: false,
		Message: message,
	})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)

	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
