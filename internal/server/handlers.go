package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/model"
)

type errorView struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, errorView{Error: err.Error(), RequestID: RequestID(r.Context())})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
}

// predicates reads the filter query parameters.
func (s *Server) predicates(r *http.Request) (filter.Predicates, error) {
	q := r.URL.Query()
	return filter.Raw{
		Team:         q.Get("team"),
		Opposition:   q.Get("opposition"),
		Competition:  q.Get("competition"),
		Venue:        q.Get("venue"),
		Country:      q.Get("country"),
		BowlerType:   q.Get("bowler_type"),
		Bowler:       q.Get("bowler"),
		Innings:      q.Get("innings"),
		BowlerHand:   q.Get("bowler_hand"),
		BowlingAngle: q.Get("bowling_angle"),
		Overs:        q.Get("overs"),
		From:         q.Get("from"),
		To:           q.Get("to"),
	}.Parse(s.opts.MinDate, s.opts.MaxDate)
}

// batterQuery resolves the {name} path variable and the filter parameters.
// It writes the error response itself and reports false on failure.
func (s *Server) batterQuery(w http.ResponseWriter, r *http.Request) (string, filter.Predicates, bool) {
	p, err := s.predicates(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return "", p, false
	}
	return mux.Vars(r)["name"], p, true
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"deliveries": s.engine.Len(),
	})
}

func (s *Server) batters(w http.ResponseWriter, r *http.Request) {
	batters := s.engine.Batters()
	if batters == nil {
		batters = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"batters": batters})
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSummaryView(s.engine.Summary(name, p)))
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	rep, err := s.engine.Report(r.Context(), name, p)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportView(rep))
}

func (s *Server) groups(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	col, err := model.ParseColumn(mux.Vars(r)["column"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"column": col,
		"rows":   newGroupViews(s.engine.Groups(name, p, col)),
	})
}

func (s *Server) lineLength(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows": newLineLengthViews(s.engine.LineLength(name, p)),
	})
}

// frequency takes category (required), group (optional; omitted groups by
// length and line), suppress_zero and a repeatable exclude parameter.
func (s *Server) frequency(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	category, err := model.ParseColumn(q.Get("category"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("category: %w", err))
		return
	}
	var group model.Column
	if g := q.Get("group"); g != "" {
		if group, err = model.ParseColumn(g); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("group: %w", err))
			return
		}
	}
	opts := aggregator.FrequencyOptions{
		SuppressZero: q.Get("suppress_zero") == "true",
		Exclude:      q["exclude"],
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":    group,
		"category": category,
		"rows":     newFrequencyViews(s.engine.Frequency(name, p, group, category, opts)),
	})
}

func (s *Server) riskReward(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows": newRiskRewardViews(s.engine.RiskReward(name, p)),
	})
}

// progression takes first and last ball numbers (default 1 to 60).
func (s *Server) progression(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	first, err := intParam(r, "first", 1)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	last, err := intParam(r, "last", 60)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if first > last {
		writeError(w, r, http.StatusBadRequest, errors.New("first is after last"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows": newProgressionViews(s.engine.Progression(name, p, first, last)),
	})
}

func (s *Server) pitchMap(w http.ResponseWriter, r *http.Request) {
	name, p, ok := s.batterQuery(w, r)
	if !ok {
		return
	}
	metric := model.PitchMetric(r.URL.Query().Get("metric"))
	switch metric {
	case "":
		metric = model.PitchSR
	case model.PitchSR, model.PitchAverage, model.PitchControl:
	default:
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("unknown metric %q", metric))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metric": metric,
		"hand":   s.engine.Hand(name),
		"cells":  newPitchViews(s.engine.PitchMap(name, p, metric)),
	})
}

func (s *Server) runExpectancy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"states": newStateViews(s.engine.Table().Entries()),
	})
}
