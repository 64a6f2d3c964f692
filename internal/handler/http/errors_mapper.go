package http

import (
	"errors"
	"net/http"

	"github.com/mkovalev/go-cred-vault/internal/crypto"
	"github.com/mkovalev/go-cred-vault/internal/service"
	"github.com/mkovalev/go-cred-vault/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrTokenExpired:        http.StatusUnauthorized,
	service.ErrTokenMalformed:      http.StatusUnauthorized,
	service.ErrSessionRevoked:      http.StatusUnauthorized,
	service.ErrRefreshTokenInvalid: http.StatusUnauthorized,
	service.ErrOwnerInactive:       http.StatusForbidden,
	service.ErrAccountLocked:       http.StatusLocked,

	service.ErrEmptyVault:         http.StatusBadRequest,
	service.ErrWeakPassphrase:     http.StatusBadRequest,
	service.ErrMalformedContainer: http.StatusBadRequest,

	// A wrong import passphrase and a tampered container are
	// indistinguishable, so both get the same status.
	crypto.ErrDecryptionFailed: http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrCredentialNotFound: http.StatusNotFound,

	service.ErrPersistenceFailure: http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
