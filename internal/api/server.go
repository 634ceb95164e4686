package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sysviz/sysviz/pkg/config"
	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/model"
	"github.com/sysviz/sysviz/pkg/observability"
	"github.com/sysviz/sysviz/pkg/pipeline"
)

const maxRequestBody = 1 << 20 // 1 MiB of SysML source is plenty

// Server computes diagram layouts on demand and serves stored results.
type Server struct {
	store  Store
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
}

// NewServer wires the HTTP layer. A nil logger discards output.
func NewServer(store Store, runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: store, runner: runner, cfg: cfg, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/diagrams", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{diagramID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Patch("/elements/{elementID}", s.handlePatchElement)
		})
	})
	return r
}

// hookMiddleware reports request lifecycle events to the observability
// registry.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

// CreateRequest is the POST /v1/diagrams payload. Zero-valued layout fields
// fall back to the server's configured canvas.
type CreateRequest struct {
	Source   string  `json:"source"`
	Name     string  `json:"name,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	FullOnly bool    `json:"full_only,omitempty"`
	Seed     uint64  `json:"seed,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Source == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "source is required"))
		return
	}

	opts := pipeline.Options{
		Source:   req.Source,
		Width:    orDefault(req.Width, s.cfg.Canvas.Width),
		Height:   orDefault(req.Height, s.cfg.Canvas.Height),
		MarginX:  s.cfg.Canvas.MarginX,
		MarginY:  s.cfg.Canvas.MarginY,
		FullOnly: req.FullOnly,
		Seed:     req.Seed,
		Logger:   s.logger,
		Tuning:   &s.cfg.Tuning,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d := &Diagram{
		ID:             uuid.NewString(),
		Name:           req.Name,
		CreatedAt:      time.Now().UTC(),
		ModelHash:      result.ModelHash,
		SystemBoundary: result.Graph.SystemBoundary,
		Model:          model.Export(result.Graph),
		Layouts:        result.Layouts,
	}
	if err := s.store.Save(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("created diagram", "id", d.ID, "elements", len(d.Model.Elements), "units", len(d.Layouts))
	s.writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "diagramID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "diagramID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchElementRequest overrides one element's position. UnitID defaults to
// the full combined diagram.
type PatchElementRequest struct {
	UnitID  string  `json:"unit_id,omitempty"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

func (s *Server) handlePatchElement(w http.ResponseWriter, r *http.Request) {
	diagramID := chi.URLParam(r, "diagramID")
	elementID := chi.URLParam(r, "elementID")

	var req PatchElementRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	d, err := s.store.Get(r.Context(), diagramID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// The in-memory store hands out shared pointers; mutate a copy so
	// concurrent readers of the stored diagram do not race with the write.
	d = d.Clone()

	unitID := req.UnitID
	if unitID == "" {
		unitID = layout.FullUnitID
	}
	result := d.Layout(unitID)
	if result == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "unit not found: %s", unitID))
		return
	}
	placed, ok := result.Placed[elementID]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeElementNotFound, "element not placed: %s", elementID))
		return
	}

	placed.CenterX = req.CenterX
	placed.CenterY = req.CenterY
	if err := s.store.Save(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("moved element", "diagram", diagramID, "unit", unitID, "element", elementID)
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidModel, errors.ErrCodeInvalidKind,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidCanvas, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDiagramNotFound,
		errors.ErrCodeElementNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
