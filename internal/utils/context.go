// Package utils holds small helpers shared across the application: context
// keys, token hashing and JWT handling, and HTTP response writing.
package utils

import (
	"context"
)

// contextKey is a private key type. A dedicated type keeps our context
// values from colliding with string keys set by other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey carries the authenticated identity's ID through a request
// context. The auth middleware writes it; handlers read it back with
// [GetUserIDFromContext].
var UserIDCtxKey = contextKey("ownerID")

// GetUserIDFromContext returns the identity ID stored under [UserIDCtxKey].
// The second result is false when the value is absent or not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
