package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/service"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	identity, err := h.services.AuthService.Register(ctx, req.Login, req.Secret)
	if err != nil {
		log.Err(err).Msg("registration failed")
		http.Error(w, "registration failed", statusFromError(err))
		return
	}

	pair, err := h.services.SessionService.Issue(ctx, identity)
	if err != nil {
		log.Err(err).Msg("token issuance after registration failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TokenPairResponse{
		AccessToken:  pair.AccessToken.SignedString,
		RefreshToken: pair.RefreshToken.SignedString,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	pair, err := h.services.AuthService.Login(ctx, req.Login, req.Secret)
	if err != nil {
		var locked *service.AccountLockedError
		if errors.As(err, &locked) {
			log.Warn().Dur("retry_after", locked.RetryAfter).Msg("login attempt on locked account")
			w.Header().Set("Retry-After", strconv.Itoa(int(locked.RetryAfter.Seconds())+1))
			http.Error(w, "account is temporarily locked", http.StatusLocked)
			return
		}

		log.Err(err).Msg("login failed")
		http.Error(w, "login failed", statusFromError(err))
		return
	}

	log.Debug().Msg("identity successfully logged in")

	utils.WriteJSON(w, models.TokenPairResponse{
		AccessToken:  pair.AccessToken.SignedString,
		RefreshToken: pair.RefreshToken.SignedString,
	}, http.StatusOK)
}
