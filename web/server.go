// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the dashboard, contacts, NPS, widget API, copilot websocket and metrics
package web

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
	"github.com/harperreed/socialpulse/viz"
)

//go:embed templates/*
var templatesFS embed.FS

const shutdownTimeout = 5 * time.Second

type Options struct {
	DB       *sql.DB
	Store    *analytics.Store
	Identity models.Identity
	Matcher  *copilot.Matcher
	// ReplyDelay is the copilot typing delay for websocket sessions.
	ReplyDelay time.Duration
	Logger     *zap.Logger
}

type Server struct {
	db         *sql.DB
	store      *analytics.Store
	identity   models.Identity
	matcher    *copilot.Matcher
	replyDelay time.Duration
	logger     *zap.Logger
	templates  *template.Template
	generator  *viz.GraphGenerator
	router     chi.Router
}

func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		opts.Store = analytics.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ReplyDelay == 0 {
		opts.ReplyDelay = copilot.DefaultReplyDelay
	}

	// Helper functions for templates
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.0f", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"signed": func(v float64) string {
			return fmt.Sprintf("%+.1f%%", v)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		db:         opts.DB,
		store:      opts.Store,
		identity:   opts.Identity,
		matcher:    opts.Matcher,
		replyDelay: opts.ReplyDelay,
		logger:     opts.Logger,
		templates:  tmpl,
		generator:  viz.NewGraphGenerator(opts.DB),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.logger))

	r.Get("/", s.handleDashboard)
	r.Get("/contacts", s.handleContacts)
	r.Get("/nps", s.handleNPS)
	r.Get("/copilot", s.handleCopilotPage)
	r.Get("/graphs/pipeline", s.handlePipelineGraph)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/pipeline", s.handlePipeline)
		r.Get("/dashboards", s.handleListDashboards)
		r.Get("/dashboards/{dashboardID}/widgets", s.handleListWidgets)
		r.Post("/dashboards/{dashboardID}/widgets", s.handleAddWidget)
		r.Delete("/dashboards/{dashboardID}/widgets/{widgetID}", s.handleRemoveWidget)
	})

	r.Get("/ws/copilot", s.handleCopilotWS)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down web server")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	stats, err := viz.GenerateDashboardStats(s.db, s.identity.UserID, time.Now())
	if err != nil {
		s.fail(w, err)
		return
	}
	dashboard, _ := s.store.Dashboard(analytics.DefaultDashboardID)

	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
		"Stats":           stats,
		"Dashboard":       dashboard,
	})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.StatusAll
	}

	contacts, err := db.ListContacts(s.db)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Contacts",
		"ContentTemplate": "contacts-content",
		"Contacts":        crm.FilterContacts(contacts, query, status),
		"Query":           query,
		"Status":          status,
		"Statuses":        []string{models.StatusAll, models.StatusHot, models.StatusWarm, models.StatusCold},
	})
}

func (s *Server) handleNPS(w http.ResponseWriter, _ *http.Request) {
	responses, err := db.ListNPSResponses(s.db)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "NPS",
		"ContentTemplate": "nps-content",
		"Summary":         nps.Compute(responses),
		"Responses":       responses,
	})
}

func (s *Server) handleCopilotPage(w http.ResponseWriter, _ *http.Request) {
	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Copilot",
		"ContentTemplate": "copilot-content",
		"Suggestions":     copilot.Suggestions(),
	})
}

func (s *Server) handlePipelineGraph(w http.ResponseWriter, r *http.Request) {
	var contactID *uuid.UUID
	if raw := r.URL.Query().Get("contact_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid contact_id", http.StatusBadRequest)
			return
		}
		contactID = &id
	}

	g, err := s.generator.GeneratePipelineGraph(r.Context(), contactID)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(g.DOT))
}

type pipelineResponse struct {
	Summary crm.Summary      `json:"summary"`
	Stages  []crm.StageStats `json:"stages"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	opps, err := db.ListOpportunities(s.db, r.URL.Query().Get("stage"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipelineResponse{
		Summary: crm.AggregateOpportunities(opps),
		Stages:  crm.PipelineByStage(opps),
	})
}

func (s *Server) handleListDashboards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Dashboards())
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.Dashboard(chi.URLParam(r, "dashboardID"))
	if !ok {
		http.Error(w, "dashboard not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d.Widgets)
}

type addWidgetResponse struct {
	Added  bool           `json:"added"`
	Widget *models.Widget `json:"widget,omitempty"`
}

func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	var spec analytics.WidgetSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if !models.IsValidWidgetType(spec.Type) {
		http.Error(w, fmt.Sprintf("invalid widget type %q", spec.Type), http.StatusBadRequest)
		return
	}

	widget, ok := s.store.AddWidget(chi.URLParam(r, "dashboardID"), spec)
	if !ok {
		writeJSON(w, http.StatusOK, addWidgetResponse{Added: false})
		return
	}
	widgetChanges.WithLabelValues("add").Inc()
	if err := s.persistDashboards(); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addWidgetResponse{Added: true, Widget: &widget})
}

func (s *Server) handleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	removed := s.store.RemoveWidget(chi.URLParam(r, "dashboardID"), chi.URLParam(r, "widgetID"))
	if removed {
		widgetChanges.WithLabelValues("remove").Inc()
		if err := s.persistDashboards(); err != nil {
			s.fail(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) persistDashboards() error {
	if s.db == nil {
		return nil
	}
	return s.store.Save(func(dashboards []models.Dashboard) error {
		return db.SaveDashboards(s.db, dashboards)
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	// Execute the specified template (usually layout.html)
	// The data map includes ContentTemplate to specify which content block to render
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
