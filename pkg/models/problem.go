// Package models holds API documentation types shared across modules.
package models

// ProblemBaseURL prefixes the type URI of every problem response.
const ProblemBaseURL = "https://pitstop.dev/problems/"

// APIProblem represents an RFC 7807 Problem Details response for Swagger docs.
// This type is used only in swagger annotations to describe error responses.
type APIProblem struct {
	Type     string `json:"type" example:"https://pitstop.dev/problems/bad-request"`
	Title    string `json:"title" example:"Bad Request"`
	Status   int    `json:"status" example:"400"`
	Detail   string `json:"detail,omitempty" example:"months must be a non-negative integer"`
	Instance string `json:"instance,omitempty" example:"/api/v1/bi/forecast/service"`
}
