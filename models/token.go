package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token type labels embedded in the "token_type" claim. A refresh token
// presented where an access token is expected (or vice versa) is rejected
// even though its signature is valid.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the claim set carried by every issued token.
//
// It embeds [jwt.RegisteredClaims] for the standard fields (sub, exp, iat,
// iss, jti) and adds the token-type discriminator.
type TokenClaims struct {
	jwt.RegisteredClaims

	// TokenType is either [TokenTypeAccess] or [TokenTypeRefresh].
	TokenType string `json:"token_type"`
}

// Token wraps a signed JWT with convenience accessors for authentication
// flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or
// returned to the client.
//
// OwnerID is a cached, parsed copy of the "sub" claim converted to int64,
// populated during issuance or after successful verification.
type Token struct {
	// Claims is the decoded claim set of the token.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// OwnerID is the identity identifier extracted from the "sub" claim.
	OwnerID int64 `json:"-"`
}

// GetOwnerID extracts the identity identifier from the token's "sub"
// (subject) claim, parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetOwnerID() (int64, error) {
	subject, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting OwnerID from token: %w", err)
	}

	ownerID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting OwnerID from token to int64: %w", err)
	}

	return ownerID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the result of session issuance: a short-lived access token
// and a long-lived refresh token backed by one SessionRecord.
type TokenPair struct {
	AccessToken  Token `json:"-"`
	RefreshToken Token `json:"-"`
}
