package server

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/HerbHall/pitstop/pkg/models"
)

// Problem types for RFC 7807 responses written by the server itself.
const (
	ProblemTypeNotFound     = models.ProblemBaseURL + "not-found"
	ProblemTypeBadRequest   = models.ProblemBaseURL + "bad-request"
	ProblemTypeInternal     = models.ProblemBaseURL + "internal-error"
	ProblemTypeUnauthorized = models.ProblemBaseURL + "unauthorized"
	ProblemTypeRateLimited  = models.ProblemBaseURL + "rate-limited"
)

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p models.APIProblem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func problem(typ string, status int, detail, instance string) models.APIProblem {
	return models.APIProblem{
		Type:     typ,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, problem(ProblemTypeNotFound, http.StatusNotFound, detail, instance))
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, problem(ProblemTypeBadRequest, http.StatusBadRequest, detail, instance))
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, problem(ProblemTypeInternal, http.StatusInternalServerError, detail, instance))
}

// Unauthorized writes a 401 problem response.
func Unauthorized(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, problem(ProblemTypeUnauthorized, http.StatusUnauthorized, detail, instance))
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, problem(ProblemTypeRateLimited, http.StatusTooManyRequests, detail, instance))
}
