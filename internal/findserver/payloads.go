package findserver

import "github.com/buildkite/orffinder/orf"

// FindResponse is the response body for GET /v1/find.
type FindResponse struct {
	Start     string      `json:"start"`
	End       string      `json:"end"`
	Count     int         `json:"count"`
	Results   []string    `json:"results"`
	Positions []orf.Match `json:"positions,omitempty"`
}

// StatsResponse is the response body for GET /v1/stats.
type StatsResponse struct {
	orf.Stats
	Alphabet      string `json:"alphabet"`
	CachedQueries int    `json:"cached_queries"`
	CachedMatches int    `json:"cached_matches"`
}

// StatusResponse is the response body for GET /status.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ErrorResponse is the response body for any errors that occur
type ErrorResponse struct {
	Error string `json:"error"`
}
