// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkovalev/go-cred-vault/internal/service"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

func TestAuthMiddleware_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.sessions.EXPECT().VerifyAccess(gomock.Any(), "valid.jwt.token").
		Return(models.Identity{IdentityID: 42, Login: "alice", Active: true}, nil)

	var gotOwnerID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok, "authenticated identity must be in the context")
		gotOwnerID = ownerID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotOwnerID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_VerificationFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "expired token", err: service.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
		{name: "revoked session", err: service.ErrSessionRevoked, wantStatus: http.StatusUnauthorized},
		{name: "malformed token", err: service.ErrTokenMalformed, wantStatus: http.StatusUnauthorized},
		{name: "inactive identity", err: service.ErrOwnerInactive, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(ctrl)

			m.sessions.EXPECT().VerifyAccess(gomock.Any(), "some.jwt.token").
				Return(models.Identity{}, tt.err)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
			req.Header.Set("Authorization", "Bearer some.jwt.token")
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def", want: "abc.def"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token part", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
