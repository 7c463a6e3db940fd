// Package server exposes charts over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/logging"
	"github.com/litescript/ls-trichart/internal/places"
	"github.com/litescript/ls-trichart/internal/render"
	"github.com/litescript/ls-trichart/internal/session"
	"github.com/litescript/ls-trichart/internal/version"
)

// Deps are the collaborators a Server needs. Only Calculator is required.
type Deps struct {
	Calculator   *session.Calculator
	Places       *places.Table
	Assembler    *chart.Assembler
	DefaultPlace string
	Log          *logging.Logger
	Registry     *prometheus.Registry
	Now          func() time.Time
}

// Server serves chart requests. Every request computes a fresh chart.
type Server struct {
	calc         *session.Calculator
	places       *places.Table
	assembler    *chart.Assembler
	defaultPlace string
	log          *logging.Logger
	registry     *prometheus.Registry
	metrics      *Metrics
	now          func() time.Time
}

// New creates a server, filling unset dependencies with defaults.
func New(d Deps) *Server {
	s := &Server{
		calc:         d.Calculator,
		places:       d.Places,
		assembler:    d.Assembler,
		defaultPlace: d.DefaultPlace,
		log:          d.Log,
		registry:     d.Registry,
		now:          d.Now,
	}
	if s.places == nil {
		s.places = places.Default()
	}
	if s.assembler == nil {
		s.assembler, _ = chart.NewAssembler(chart.DefaultLayout())
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.metrics = NewMetrics(s.registry)
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Get("/chart", s.handleChartJSON)
		r.Get("/chart.svg", s.handleChartSVG)
		r.Get("/places", s.handlePlaces)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readTimeout,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening on %s (provider %s)", addr, s.calc.Provider())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// observe counts requests by route pattern and status code.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.log.Debug("%s %s %d %s", r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": s.calc.Provider(),
		"version":  version.Version,
	})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.places.All())
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	c, err := s.compute(r)
	if err != nil {
		writeError(w, err)
		return
	}
	export := render.ExportChart(c, c.Geometry(s.assembler), c.Tables())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := export.WriteJSON(w); err != nil {
		s.log.Warn("writing chart %s: %v", c.ID, err)
	}
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	c, err := s.compute(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := []render.SVGOption{render.WithTitle(c.Request.Place.Name + " " + c.Request.Birth.Format("2006-01-02 15:04"))}
	if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		opts = append(opts, render.WithSize(size))
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.SVG(c.Geometry(s.assembler), opts...))
}

// FormFromQuery reads chart input from URL query parameters.
func FormFromQuery(q map[string][]string) session.Form {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return session.Form{
		BirthDate:   get("birth_date"),
		BirthTime:   get("birth_time"),
		Place:       get("place"),
		TransitDate: get("transit_date"),
		TransitTime: get("transit_time"),
		TimeZone:    get("tz"),
	}
}

func (s *Server) compute(r *http.Request) (*session.Chart, error) {
	form := FormFromQuery(r.URL.Query())
	if form.Place == "" {
		form.Place = s.defaultPlace
	}
	req, err := form.Resolve(s.places, s.now())
	if err != nil {
		s.metrics.ChartsComputed.WithLabelValues(string(errors.GetCode(err))).Inc()
		return nil, err
	}

	start := time.Now()
	c, err := s.calc.Compute(r.Context(), req)
	s.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := string(errors.GetCode(err))
		if outcome == "" {
			outcome = "internal"
		}
		s.metrics.ChartsComputed.WithLabelValues(outcome).Inc()
		s.log.Warn("chart for %s: %v", req.Place.Name, err)
		return nil, err
	}
	s.metrics.ChartsComputed.WithLabelValues("ok").Inc()
	return c, nil
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInputFormat, errors.CodeUnknownPlace:
		return http.StatusBadRequest
	case errors.CodeHouseCalculation, errors.CodeInvalidCusps, errors.CodeUnclassifiable:
		return http.StatusUnprocessableEntity
	case errors.CodeEphemeris:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError translates domain errors to a JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if code == "" {
		code = "INTERNAL"
		msg = "internal error"
	}
	writeJSON(w, StatusFor(err), errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
