package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"procurement/auth"
	"procurement/models"
	"procurement/repository"
	"procurement/validation"
)

type UserHandler struct {
	Repo     repository.UserRepository
	Vendors  repository.VendorRepository
	Tokens   *auth.TokenManager
	Denylist auth.Denylist
	Logger   *slog.Logger
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      *models.AppUser `json:"user"`
}

// Signup creates another admin account. Vendor accounts go through RegisterVendor.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var user models.AppUser
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	user.Role = models.RoleAdmin
	user.VendorID = ""
	if errs := validation.Struct(user); errs != nil {
		writeError(w, http.StatusBadRequest, validation.Summary(errs))
		return
	}
	if len(user.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if err := h.Repo.CreateUser(r.Context(), &user); err != nil {
		writeRepoError(w, h.Logger, err, "", "Username already taken", "Failed to create user")
		return
	}

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User signed up successfully",
		Data:    user,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.Repo.GetUserByUsername(r.Context(), creds.Username)
	if err != nil {
		h.Logger.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, claims, err := h.Tokens.Issue(user)
	if err != nil {
		h.Logger.Error("issue token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data: loginResponse{
			Token:     token,
			ExpiresAt: claims.ExpiresAt.Time,
			User:      user,
		},
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.Denylist.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.Logger.Error("revoke token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Logged out"})
}

// RegisterVendor creates the vendor and provisions its login (username = vendor code)
// in one request. If the login cannot be created the vendor is removed again.
func (h *UserHandler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	var reg models.VendorRegistration
	if err := decodeJSON(r, &reg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if errs := validation.Struct(reg); errs != nil {
		writeError(w, http.StatusBadRequest, validation.Summary(errs))
		return
	}

	ctx := r.Context()
	vendor := reg.Vendor
	vendor.ID = ""
	vendor.CreatedAt = time.Time{}
	vendor.UpdatedAt = nil
	if err := h.Vendors.CreateVendor(ctx, &vendor); err != nil {
		writeRepoError(w, h.Logger, err, "", "Vendor code already exists", "Failed to register vendor")
		return
	}

	user := &models.AppUser{
		Name:     vendor.Name,
		Username: vendor.VendorCode,
		Email:    vendor.Email,
		Role:     models.RoleVendor,
		Password: reg.Password,
		VendorID: vendor.ID,
	}
	if err := h.Repo.CreateUser(ctx, user); err != nil {
		if rbErr := h.Vendors.DeleteVendor(ctx, vendor.ID); rbErr != nil && !errors.Is(rbErr, repository.ErrNotFound) {
			h.Logger.Error("rollback vendor after failed registration", "id", vendor.ID, "error", rbErr)
		}
		writeRepoError(w, h.Logger, err, "", "A login for this vendor code already exists", "Failed to register vendor")
		return
	}

	h.Logger.Info("vendor registered", "id", vendor.ID, "vendorCode", vendor.VendorCode)
	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Vendor registered successfully",
		Data:    vendor,
	})
}
