// Package api serves the cleaned dataset to the reporting surfaces as
// a read-only JSON API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/velodata/cycling.report/internal/accident"
	"github.com/velodata/cycling.report/internal/analytics"
	"github.com/velodata/cycling.report/internal/dataset"
	"github.com/velodata/cycling.report/internal/httputil"
	"github.com/velodata/cycling.report/internal/version"
)

// ANSI escape codes for request logging
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server exposes one dataset snapshot over HTTP. All endpoints are
// read-only; the snapshot is immutable so no locking is needed.
type Server struct {
	snap *dataset.Snapshot
}

func NewServer(snap *dataset.Snapshot) *Server {
	return &Server{snap: snap}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/records", s.listRecords)
	mux.HandleFunc("/summary", s.showSummary)
	mux.HandleFunc("/trend", s.showTrend)
	mux.HandleFunc("/aggregates/", s.showAggregate)
	mux.HandleFunc("/cleaning_report", s.showCleaningReport)
	mux.HandleFunc("/config", s.showConfig)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// filterSpecFromQuery builds a FilterSpec from query parameters.
// Absent parameters (and the literal "all") leave a dimension
// unrestricted; an explicitly empty list is an empty selection that
// matches nothing.
func filterSpecFromQuery(r *http.Request) (analytics.FilterSpec, error) {
	var spec analytics.FilterSpec
	q := r.URL.Query()

	if v := q.Get("year_min"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("invalid 'year_min' parameter %q", v)
		}
		spec.YearMin = year
	}
	if v := q.Get("year_max"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("invalid 'year_max' parameter %q", v)
		}
		spec.YearMax = year
	}

	if q.Has("departments") {
		v := q.Get("departments")
		if v != "all" {
			spec.Departments = []string{}
			if v != "" {
				spec.Departments = strings.Split(v, ",")
			}
		}
	}

	if q.Has("severities") {
		v := q.Get("severities")
		if v != "all" {
			spec.Severities = []accident.Severity{}
			if v != "" {
				for _, label := range strings.Split(v, ",") {
					sev, ok := accident.SeverityFromLabel(label)
					if !ok {
						return spec, fmt.Errorf("unknown severity %q", label)
					}
					spec.Severities = append(spec.Severities, sev)
				}
			}
		}
	}

	spec.Agglomeration = q.Get("agglomeration")

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	spec, err := filterSpecFromQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	records := s.snap.Filter(spec)

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			httputil.BadRequest(w, "Invalid 'limit' parameter")
			return
		}
		if limit < len(records) {
			records = records[:limit]
		}
	}

	if err := json.NewEncoder(w).Encode(records); err != nil {
		httputil.InternalServerError(w, "Failed to write records")
	}
}

func (s *Server) showSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	spec, err := filterSpecFromQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(s.snap.Summary(spec)); err != nil {
		httputil.InternalServerError(w, "Failed to write summary")
	}
}

func (s *Server) showTrend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	spec, err := filterSpecFromQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	trend := s.snap.Trend(spec)
	// The trend is NaN for fewer than two distinct years; encode the
	// undefined case as nulls rather than failing JSON encoding.
	out := map[string]interface{}{
		"slope":     analytics.Rate(trend.Slope),
		"intercept": analytics.Rate(trend.Intercept),
		"r_squared": analytics.Rate(trend.RSquared),
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		httputil.InternalServerError(w, "Failed to write trend")
	}
}

func (s *Server) showAggregate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/aggregates/")
	table, err := s.snap.Aggregate(name)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownAggregate) {
			httputil.NotFound(w,
				fmt.Sprintf("unknown aggregate %q (valid: %s)", name, strings.Join(analytics.AggregateNames, ", ")))
			return
		}
		httputil.InternalServerError(w, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(table); err != nil {
		httputil.InternalServerError(w, "Failed to write aggregate")
	}
}

func (s *Server) showCleaningReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	if err := json.NewEncoder(w).Encode(s.snap.Report()); err != nil {
		httputil.InternalServerError(w, "Failed to write cleaning report")
	}
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	out := map[string]interface{}{
		"dataset":    dataset.Info(),
		"hash":       s.snap.Hash,
		"aggregates": analytics.AggregateNames,
		"version":    version.String(),
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		httputil.InternalServerError(w, "Failed to write config")
	}
}
