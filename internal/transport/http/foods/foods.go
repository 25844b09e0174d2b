package foods

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/converters"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service interface {
	List(ctx context.Context) ([]food.Food, error)
	Get(ctx context.Context, id uuid.UUID) (food.Food, error)
	Create(ctx context.Context, input food.Patch) (food.Food, error)
	Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// foodRequest carries the writable fields of a food. Absent fields stay nil.
type foodRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	IsAvailable *bool            `json:"isAvailable"`
}

func (r *foodRequest) toPatch() food.Patch {
	return food.Patch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
		IsAvailable: r.IsAvailable,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Handler serves the /foods routes.
type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the food routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error listing foods", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, foods)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	f, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, f)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req := foodRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, response.MsgInvalidJSON)
		slog.Error("Error decoding request body for create food", "error", err)

		return
	}

	created, err := h.service.Create(r.Context(), req.toPatch())
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error creating food", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	req := foodRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, response.MsgInvalidJSON)
		slog.Error("Error decoding request body for update food", "error", err)

		return
	}

	updated, err := h.service.Update(r.Context(), id, req.toPatch())
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error updating food", "food_id", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error deleting food", "food_id", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
