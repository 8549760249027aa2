package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

// Client-facing error messages.
const (
	msgInvalidInput  = "Invalid input"
	msgDuplicateName = "A model by that name already exists."
	msgInternal      = "Internal server error"
)

// ItemsHandler handles the catalog HTTP endpoints using pkg/catalog.
type ItemsHandler struct {
	service catalog.Service
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(service catalog.Service) *ItemsHandler {
	return &ItemsHandler{service: service}
}

// Routes returns the router for the catalog endpoints
func (h *ItemsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListItems)
	r.Post("/", h.CreateItem)
	r.Get("/models/{file}", h.ServeModel)
	r.Get("/icons/{file}", h.ServeIcon)
	return r
}

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ItemResponse wraps the created item on a successful upload.
type ItemResponse struct {
	Item *catalog.Item `json:"item"`
}

// ListItems returns one page of catalog items.
//
// The page query parameter is 1-based; absence, a parse failure, or a
// non-positive value all fall back to the first page.
func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	items, err := h.service.ListPage(r.Context(), page)
	if err != nil {
		slog.Error("Failed to list items", "page", page, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: msgInternal})
		return
	}

	render.JSON(w, r, items)
}

// CreateItem ingests a multipart upload: a "name" text field plus "icon" and
// "model" file fields.
func (h *ItemsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: msgInvalidInput})
		return
	}

	item, err := h.service.Ingest(r.Context(), catalog.IngestRequest{Parts: mr})
	if err != nil {
		h.renderIngestError(w, r, err)
		return
	}

	slog.Info("Item created", "item_id", item.ID.String(), "name", item.Name)
	render.JSON(w, r, ItemResponse{Item: item})
}

// ServeModel streams a stored model asset by its generated filename.
func (h *ItemsHandler) ServeModel(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, catalog.CategoryModel)
}

// ServeIcon streams a stored icon asset by its generated filename.
func (h *ItemsHandler) ServeIcon(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, catalog.CategoryIcon)
}

func (h *ItemsHandler) serveAsset(w http.ResponseWriter, r *http.Request, category catalog.Category) {
	name := chi.URLParam(r, "file")

	rc, meta, err := h.service.OpenAsset(r.Context(), category, name)
	if err != nil {
		if errors.Is(err, catalog.ErrFileNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Error: "Not found"})
			return
		}
		slog.Error("Failed to open asset", "category", category, "file", name, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: msgInternal})
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream asset", "category", category, "file", name, "error", err)
	}
}

// renderIngestError maps pipeline failures onto the API's error contract.
// Validation and missing-field rejections are client errors and stay out of
// the error log; anything else is an operator concern.
func (h *ItemsHandler) renderIngestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrDuplicateName):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: msgDuplicateName})
	case errors.Is(err, catalog.ErrInvalidFileType),
		errors.Is(err, catalog.ErrMissingField),
		errors.Is(err, catalog.ErrFileTooLarge):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: msgInvalidInput})
	default:
		slog.Error("Ingestion failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: msgInternal})
	}
}

// parsePage coerces the raw page parameter to a valid 1-based page number.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// Health returns a liveness handler.
func Health(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, HealthResponse{Status: "healthy", Environment: environment})
	}
}
