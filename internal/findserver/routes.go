package findserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/orf"
	"github.com/buildkite/orffinder/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// router returns a chi router with the find routes and appropriate middlewares mounted
func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		RequestIDMiddleware,
		LoggerMiddleware(s.logger),
		HeadersMiddleware(http.Header{"Server": []string{version.UserAgent()}}),
		middleware.Recoverer,
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		// All other responses are in JSON.
		r.Use(HeadersMiddleware(http.Header{"Content-Type": []string{"application/json"}}))

		r.Get("/status", s.getStatus)
		r.Route("/v1", func(r chi.Router) {
			r.Get("/find", s.getFind)
			r.Get("/stats", s.getStats)
		})
	})

	return r
}

func (s *Server) getFind(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")

	switch {
	case start == "":
		s.writeError(w, errors.New("start must not be empty"), http.StatusBadRequest)
		return
	case end == "":
		s.writeError(w, errors.New("end must not be empty"), http.StatusBadRequest)
		return
	}

	positions := false
	if v := q.Get("positions"); v != "" {
		var err error
		if positions, err = strconv.ParseBool(v); err != nil {
			s.writeError(w, errors.New("positions must be true or false"), http.StatusBadRequest)
			return
		}
	}

	t := time.Now()
	matches, hit := s.cache.get(start, end, func() []orf.Match {
		return s.finder.Matches(start, end)
	})
	metrics.ObserveQuery(s.scope, time.Since(t), len(matches))

	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}

	genome := s.finder.Genome()
	resp := &FindResponse{
		Start:   start,
		End:     end,
		Count:   len(matches),
		Results: make([]string, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Results = append(resp.Results, genome[m.Start:m.End])
	}
	if positions {
		resp.Positions = matches
	}

	s.writeJSON(w, resp)
}

func (s *Server) getStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, &StatsResponse{
		Stats:         s.finder.Stats(),
		Alphabet:      s.finder.Alphabet().String(),
		CachedQueries: s.cache.len(),
		CachedMatches: s.cache.matchCount(),
	})
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, &StatusResponse{
		Status:  "ok",
		Version: version.FullVersion(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Find server: couldn't encode response body: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error, code int) {
	if werr := WriteError(w, err, code); werr != nil {
		s.logger.Error("Find server: couldn't write error response: %v", werr)
	}
}
