// Package http provides the chi-based HTTP transport for the catalog
// service.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "dscat/internal/errors"
	"dscat/internal/infrastructure"
	"dscat/internal/services"
)

// CatalogHandler handles catalog HTTP requests.
type CatalogHandler struct {
	service      *services.CatalogService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *services.CatalogService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CatalogHandler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &CatalogHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "catalog_handler"),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the catalog routes.
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListSources)
	r.Route("/{name}", func(r chi.Router) {
		r.Use(h.SourceCtx)
		r.Get("/", h.GetSource)
		r.Post("/process", h.ProcessSource)
	})
	return r
}

// SourceCtx validates the source name parameter.
func (h *CatalogHandler) SourceCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSources handles GET /api/sources.
func (h *CatalogHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.ListSources(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"sources": sources})
}

// GetSource handles GET /api/sources/{name}.
func (h *CatalogHandler) GetSource(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.SourceDetail(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, detail)
}

// processRequestBody is the POST /process payload.
type processRequestBody struct {
	Kind     string         `json:"kind" validate:"omitempty,max=64"`
	Metadata map[string]any `json:"metadata" validate:"omitempty,max=64"`
	Params   map[string]any `json:"params" validate:"omitempty,max=64"`
}

// processResponse wraps the assembled dataset.
type processResponse struct {
	Name     string         `json:"name"`
	Rows     int            `json:"rows"`
	Columns  int            `json:"columns"`
	Data     [][]string     `json:"data"`
	Target   []string       `json:"target,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

// ProcessSource handles POST /api/sources/{name}/process. An empty
// body processes with the extractor's default kind.
func (h *CatalogHandler) ProcessSource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body processRequestBody
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if err := h.validate.Struct(&body); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ValidationWithDetails(err.Error()))
		return
	}

	ds, err := h.service.Process(r.Context(), name, services.ProcessRequest{
		Kind:     body.Kind,
		Metadata: body.Metadata,
		Params:   body.Params,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, processResponse{
		Name:     ds.Name,
		Rows:     ds.Rows(),
		Columns:  ds.Columns(),
		Data:     ds.Data,
		Target:   ds.Target,
		Metadata: ds.Metadata,
	})
}
