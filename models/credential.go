package models

import "time"

// Credential is a stored site credential owned by one identity.
//
// The Secret and Notes fields hold plaintext only while the value is in
// flight between the transport layer and the field cipher; at rest both are
// persisted as encrypted-field wire strings (see [EncryptedField]).
type Credential struct {
	// CredentialID is the server-assigned unique identifier of the record.
	CredentialID int64 `json:"credential_id"`

	// OwnerID is the identity that owns this credential.
	OwnerID int64 `json:"-"`

	// Title is a user-chosen label for the credential (e.g. the site name).
	// Stored in the clear; it is lookup metadata, not a secret.
	Title string `json:"title"`

	// Login is the site-side account name. Stored in the clear.
	Login string `json:"login"`

	// Secret is the credential value (password, API key, etc.).
	Secret string `json:"secret"`

	// Notes is optional free-form text attached to the credential.
	Notes string `json:"notes,omitempty"`

	// CreatedAt and UpdatedAt are persistence-layer timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}
