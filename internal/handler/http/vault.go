package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

// exportVault bundles the caller's full credential set into a
// passphrase-encrypted container and returns it. Nothing is persisted; the
// container exists only in the response.
func (h *Handler) exportVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accounts, err := h.services.CredentialService.DecryptedAccounts(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("error loading accounts for export")
		http.Error(w, "error loading accounts for export", statusFromError(err))
		return
	}

	container, err := h.services.VaultService.Export(ctx, accounts, req.Passphrase)
	if err != nil {
		log.Err(err).Msg("vault export failed")
		http.Error(w, "vault export failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, container, http.StatusOK)
}

// importVault decrypts an uploaded container and persists every decodable
// account as a new credential of the caller. Individually malformed records
// are skipped and reported; they do not abort the batch.
func (h *Handler) importVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.VaultService.Import(ctx, req.Container, req.Passphrase)
	if err != nil {
		log.Err(err).Msg("vault import failed")
		http.Error(w, "vault import failed", statusFromError(err))
		return
	}

	for _, account := range result.Imported {
		_, err = h.services.CredentialService.CreateCredential(ctx, models.Credential{
			OwnerID: ownerID,
			Title:   account.Title,
			Login:   account.Login,
			Secret:  account.Secret,
			Notes:   account.Notes,
		})
		if err != nil {
			log.Err(err).Str("title", account.Title).Msg("error persisting imported account")
			http.Error(w, "error persisting imported account", statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
