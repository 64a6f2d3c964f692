package models

// RegisterRequest is the payload of POST /api/user/register.
type RegisterRequest struct {
	// Login is the unique account login. Required.
	Login string `json:"login"`

	// Secret is the plaintext login secret. Hashed server-side before
	// storage; never persisted or logged as-is.
	Secret string `json:"secret"`
}

// LoginRequest is the payload of POST /api/user/login.
type LoginRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}

// TokenPairResponse carries a freshly issued token pair back to the client.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is the payload of POST /api/session/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenResponse carries the rotated access token after a refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RevokeAllResponse reports how many live sessions a logout-everywhere
// call invalidated.
type RevokeAllResponse struct {
	Revoked int64 `json:"revoked"`
}

// ExportRequest is the payload of POST /api/vault/export.
type ExportRequest struct {
	// Passphrase encrypts the exported container. Subject to a
	// minimum-length policy; it is unrelated to the account secret.
	Passphrase string `json:"passphrase"`
}

// ImportRequest is the payload of POST /api/vault/import.
type ImportRequest struct {
	Passphrase string         `json:"passphrase"`
	Container  VaultContainer `json:"container"`
}
