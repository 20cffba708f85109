package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"procurement/models"
	"procurement/repository"
	"procurement/validation"
)

type ItemHandler struct {
	Repo   repository.ItemRepository
	Logger *slog.Logger
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filters := listFilters(r)
	items, total, err := h.Repo.ListItems(r.Context(), filters)
	if err != nil {
		h.Logger.Error("list items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	writeJSON(w, http.StatusOK, models.ItemPage{
		Items:      items,
		TotalPages: models.TotalPages(total, filters.Limit),
		Total:      total,
		Page:       filters.Page,
	})
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Repo.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, h.Logger, err, "Item not found", "", "Failed to fetch item")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: item})
}

func (h *ItemHandler) decodeItem(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	var item models.Item
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return nil, false
	}
	if errs := validation.Struct(item); errs != nil {
		writeError(w, http.StatusBadRequest, validation.Summary(errs))
		return nil, false
	}
	return &item, true
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item.ID = ""
	if err := h.Repo.CreateItem(r.Context(), item); err != nil {
		writeRepoError(w, h.Logger, err, "", "Item code already exists", "Failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Item created successfully", Data: item})
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	if err := h.Repo.UpdateItem(r.Context(), chi.URLParam(r, "id"), item); err != nil {
		writeRepoError(w, h.Logger, err, "Item not found", "Item code already exists", "Failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Item updated successfully", Data: item})
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, h.Logger, err, "Item not found", "", "Failed to delete item")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Item deleted successfully"})
}
