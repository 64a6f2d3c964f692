package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

func (h *Handler) createCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var credential models.Credential
	if err := json.NewDecoder(r.Body).Decode(&credential); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	credential.OwnerID = ownerID

	saved, err := h.services.CredentialService.CreateCredential(ctx, credential)
	if err != nil {
		log.Err(err).Msg("error creating credential")
		http.Error(w, "error creating credential", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	credentialID, err := credentialIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid credential id", http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.GetCredential(ctx, ownerID, credentialID)
	if err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("error getting credential")
		http.Error(w, "error getting credential", statusFromError(err))
		return
	}

	utils.WriteJSON(w, credential, http.StatusOK)
}

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	credentials, err := h.services.CredentialService.ListCredentials(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("error listing credentials")
		http.Error(w, "error listing credentials", statusFromError(err))
		return
	}

	utils.WriteJSON(w, credentials, http.StatusOK)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	credentialID, err := credentialIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid credential id", http.StatusBadRequest)
		return
	}

	var credential models.Credential
	if err = json.NewDecoder(r.Body).Decode(&credential); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	credential.OwnerID = ownerID
	credential.CredentialID = credentialID

	if err = h.services.CredentialService.UpdateCredential(ctx, credential); err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("error updating credential")
		http.Error(w, "error updating credential", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	credentialID, err := credentialIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid credential id", http.StatusBadRequest)
		return
	}

	if err = h.services.CredentialService.DeleteCredential(ctx, ownerID, credentialID); err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("error deleting credential")
		http.Error(w, "error deleting credential", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func credentialIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
