package handlers

import (
	"encoding/json"
	"net/http"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/services"
	"mindmate-backend/internal/storage"
)

type UserHandler struct {
	authService *services.AuthService
	store       storage.Store
}

func NewUserHandler(authService *services.AuthService, store storage.Store) *UserHandler {
	return &UserHandler{authService: authService, store: store}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetTheme returns the saved theme for the identity, dark by default.
func (h *UserHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	theme, ok, err := h.store.Get(r.Context(), storage.Key(storage.CategoryTheme, identity))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !ok || (theme != "dark" && theme != "light") {
		theme = "dark"
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *UserHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Theme != "dark" && req.Theme != "light" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"theme": "Theme must be dark or light"}, r))
		return
	}

	identity := middleware.GetIdentity(r.Context())
	if err := h.store.Set(r.Context(), storage.Key(storage.CategoryTheme, identity), req.Theme); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
