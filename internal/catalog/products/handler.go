package products

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/perfumaria/catalog-api/internal/platform/httpx"
	"github.com/perfumaria/catalog-api/internal/shared"
)

const notFoundMessage = "Product not found"

// Handler wires HTTP endpoints for product resources.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers product routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.show)
	r.Post("/products", h.create)
	r.Put("/products/{id}", h.update)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logError("list products", err)
		httpx.Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if list == nil {
		list = []Product{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.NotFound(w, notFoundMessage)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err, notFoundMessage)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.NotFound(w, notFoundMessage)
		return
	}

	var form ProductForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if _, ok := shared.AsValidationError(err); !ok && !errors.Is(err, shared.ErrNotFound) {
		h.logError("product write", err)
	}
	httpx.RespondError(w, err, notFoundMessage)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
