package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accessToken, err := h.services.SessionService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Err(err).Msg("token refresh failed")
		http.Error(w, "token refresh failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AccessTokenResponse{AccessToken: accessToken.SignedString}, http.StatusOK)
}

// logout revokes the session behind the presented access token. The
// endpoint is idempotent: logging out twice succeeds both times.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		// The auth middleware already parsed this header, so this is
		// unreachable in practice.
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err = h.services.SessionService.Revoke(ctx, tokenString); err != nil {
		log.Err(err).Msg("session revocation failed")
		http.Error(w, "session revocation failed", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	revoked, err := h.services.SessionService.RevokeAll(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("revoking all sessions failed")
		http.Error(w, "revoking all sessions failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.RevokeAllResponse{Revoked: revoked}, http.StatusOK)
}
