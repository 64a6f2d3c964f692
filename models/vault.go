package models

import "time"

// VaultContainer is the portable export artifact: a version tag, a creation
// timestamp, and the passphrase-encrypted payload.
//
// The container exists only transiently during export/import and is never
// persisted server-side. Payload is base64(salt ‖ nonce ‖ ciphertext); the
// plaintext inside is a JSON bundle {"accounts": [...]} of
// [DecryptedAccount] values.
type VaultContainer struct {
	// Version identifies the container format. Current value is "1".
	Version string `json:"version"`

	// CreatedAt is the export timestamp, serialized as RFC 3339.
	CreatedAt time.Time `json:"created_at"`

	// Payload is the opaque encrypted blob, base64 (standard encoding).
	Payload string `json:"payload"`
}

// DecryptedAccount is one fully decrypted credential inside a vault bundle.
// It carries no server-side identifiers: exports are portable across
// deployments.
type DecryptedAccount struct {
	Title  string `json:"title"`
	Login  string `json:"login"`
	Secret string `json:"secret"`
	Notes  string `json:"notes,omitempty"`
}

// SkippedRecord describes one account record inside an otherwise valid
// container that could not be decoded during import.
type SkippedRecord struct {
	// Index is the zero-based position of the record in the bundle.
	Index int `json:"index"`

	// Reason is a short description of why the record was skipped.
	Reason string `json:"reason"`
}

// VaultImportResult is the outcome of a batch import: the decodable
// accounts plus a report of the skipped ones. Partial success is the
// default; the whole import fails only when the container itself cannot be
// authenticated or parsed.
type VaultImportResult struct {
	Imported []DecryptedAccount `json:"imported"`
	Skipped  []SkippedRecord    `json:"skipped"`
}
