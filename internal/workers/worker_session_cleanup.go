// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package workers

import (
	"context"
	"time"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
)

// sessionCleanupWorker periodically deletes session records that can never
// authenticate again: expired ones and revoked ones. Verification already
// rejects both kinds; the sweep only keeps the sessions table from growing
// without bound.
type sessionCleanupWorker struct {
	sessions store.SessionRepository
	interval time.Duration

	// now is the clock; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

func newSessionCleanupWorker(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *sessionCleanupWorker {
	return &sessionCleanupWorker{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run starts the cleanup loop in its own goroutine and returns immediately.
func (w *sessionCleanupWorker) Run() {
	go w.loop()
}

func (w *sessionCleanupWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.sweep(context.Background())
	}
}

func (w *sessionCleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.sessions.DeleteExpiredSessions(ctx, w.now().UTC())
	if err != nil {
		w.logger.Err(err).Msg("session cleanup sweep failed")
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions cleaned up")
	}
}
