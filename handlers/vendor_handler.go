package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"procurement/models"
	"procurement/repository"
	"procurement/validation"
)

type VendorHandler struct {
	Repo   repository.VendorRepository
	Users  repository.UserRepository
	Logger *slog.Logger
}

// ListVendors serves GET /vendors?page&limit&search as {vendors, totalPages}.
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	filters := listFilters(r)
	vendors, total, err := h.Repo.ListVendors(r.Context(), filters)
	if err != nil {
		h.Logger.Error("list vendors failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}

	writeJSON(w, http.StatusOK, models.VendorPage{
		Vendors:    vendors,
		TotalPages: models.TotalPages(total, filters.Limit),
		Total:      total,
		Page:       filters.Page,
	})
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.Repo.GetVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, h.Logger, err, "Vendor not found", "", "Failed to fetch vendor")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: vendor})
}

// UpdateVendor replaces the vendor's editable fields and renames its login when the
// vendor code changes.
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var vendor models.Vendor
	if err := decodeJSON(r, &vendor); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if errs := validation.Struct(vendor); errs != nil {
		writeError(w, http.StatusBadRequest, validation.Summary(errs))
		return
	}

	ctx := r.Context()
	existing, err := h.Repo.GetVendor(ctx, id)
	if err != nil {
		writeRepoError(w, h.Logger, err, "Vendor not found", "", "Failed to update vendor")
		return
	}

	if err := h.Repo.UpdateVendor(ctx, id, &vendor); err != nil {
		writeRepoError(w, h.Logger, err, "Vendor not found", "Vendor code already exists", "Failed to update vendor")
		return
	}

	// The vendor's login is its vendor code.
	if existing.VendorCode != vendor.VendorCode {
		if err := h.Users.UpdateUsernameByVendor(ctx, id, vendor.VendorCode); err != nil {
			if rbErr := h.Repo.UpdateVendor(ctx, id, existing); rbErr != nil {
				h.Logger.Error("rollback vendor after failed login rename", "id", id, "error", rbErr)
			}
			writeRepoError(w, h.Logger, err, "", "A login for this vendor code already exists", "Failed to update vendor")
			return
		}
	}

	h.Logger.Info("vendor updated", "id", id, "vendorCode", vendor.VendorCode)
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Vendor updated successfully",
		Data:    vendor,
	})
}

// DeleteVendor removes the vendor and the login provisioned for it at registration.
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.DeleteVendor(r.Context(), id); err != nil {
		writeRepoError(w, h.Logger, err, "Vendor not found", "", "Failed to delete vendor")
		return
	}
	if err := h.Users.DeleteUsersByVendor(r.Context(), id); err != nil {
		h.Logger.Warn("vendor deleted but its login was not", "id", id, "error", err)
	}

	h.Logger.Info("vendor deleted", "id", id)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Vendor deleted successfully"})
}
