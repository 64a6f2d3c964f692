// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkovalev/go-cred-vault/internal/service"
	"github.com/mkovalev/go-cred-vault/internal/store"
	"github.com/mkovalev/go-cred-vault/models"
)

func tokenPair(access, refresh string) models.TokenPair {
	return models.TokenPair{
		AccessToken:  models.Token{SignedString: access},
		RefreshToken: models.Token{SignedString: refresh},
	}
}

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	identity := models.Identity{IdentityID: 1, Login: "alice", Active: true}
	m.auth.EXPECT().Register(gomock.Any(), "alice", "s3cret").Return(identity, nil)
	m.sessions.EXPECT().Issue(gomock.Any(), identity).Return(tokenPair("a.b.c", "d.e.f"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"login":"alice","secret":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"a.b.c","refresh_token":"d.e.f"}`, rec.Body.String())
}

func TestRegister_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Register(gomock.Any(), "alice", "s3cret").
		Return(models.Identity{}, store.ErrLoginAlreadyExists)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"login":"alice","secret":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Register(gomock.Any(), "", "").
		Return(models.Identity{}, service.ErrInvalidDataProvided)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret").Return(tokenPair("a.b.c", "d.e.f"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"login":"alice","secret":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"a.b.c","refresh_token":"d.e.f"}`, rec.Body.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Login(gomock.Any(), "alice", "wrong").
		Return(models.TokenPair{}, service.ErrInvalidCredentials)

	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"login":"alice","secret":"wrong"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_LockedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret").
		Return(models.TokenPair{}, &service.AccountLockedError{RetryAfter: 10 * time.Minute})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"login":"alice","secret":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, "601", rec.Header().Get("Retry-After"))
}

func TestLogin_InactiveIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret").
		Return(models.TokenPair{}, service.ErrOwnerInactive)

	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"login":"alice","secret":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
