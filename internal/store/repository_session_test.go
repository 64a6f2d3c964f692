// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, placeholder: sq.Dollar, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestInsertSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()
	record := models.SessionRecord{
		SessionID:        uuid.New(),
		OwnerID:          1,
		AccessTokenHash:  "aaa",
		RefreshTokenHash: "rrr",
		IssuedAt:         now,
		ExpiresAt:        now.Add(time.Hour),
		LastActivity:     now,
		Valid:            true,
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(record.SessionID, record.OwnerID, "aaa", "rrr",
			record.IssuedAt, record.ExpiresAt, record.LastActivity, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.InsertSession(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInsertSession_ExecError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(errors.New("connection refused"))

	err := repo.InsertSession(context.Background(), models.SessionRecord{SessionID: uuid.New()})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestFindSessionByAccessHash_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	sessionID := uuid.New()
	now := time.Now()
	rows := sqlmock.
		NewRows(sessionColumns).
		AddRow(sessionID.String(), int64(7), "aaa", "rrr", now, now.Add(time.Hour), now, true)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("aaa").
		WillReturnRows(rows)

	found, err := repo.FindSessionByAccessHash(context.Background(), "aaa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.SessionID != sessionID {
		t.Errorf("expected session %s, got %s", sessionID, found.SessionID)
	}
	if found.OwnerID != 7 {
		t.Errorf("expected owner 7, got %d", found.OwnerID)
	}
	if !found.Valid {
		t.Error("expected a valid session")
	}
}

func TestFindSessionByRefreshHash_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSessionByRefreshHash(context.Background(), "unknown")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRotateAccessToken_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	sessionID := uuid.New()
	now := time.Now()

	mock.ExpectExec("UPDATE sessions").
		WithArgs("newdigest", now.Add(time.Hour), now, sessionID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RotateAccessToken(context.Background(), sessionID, "newdigest", now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRotateAccessToken_RevokedSession(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	// The valid=true guard filtered the row out.
	mock.ExpectExec("UPDATE sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RotateAccessToken(context.Background(), uuid.New(), "newdigest", time.Now(), time.Now())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRevokeByTokenHash_Idempotent(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	// Unknown or already-revoked digest: zero rows, no error.
	mock.ExpectExec("UPDATE sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.RevokeByTokenHash(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected, got %d", affected)
	}
}

func TestRevokeAllForOwner_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE sessions").
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.RevokeAllForOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 3 {
		t.Errorf("expected 3 rows affected, got %d", affected)
	}
}

func TestDeleteExpiredSessions_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	before := time.Now()
	mock.ExpectExec("DELETE FROM sessions").
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteExpiredSessions(context.Background(), before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected 5 rows deleted, got %d", deleted)
	}
}
