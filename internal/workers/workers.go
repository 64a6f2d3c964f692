package workers

import (
	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker of the application. Currently
// that is the session cleanup worker alone.
func NewWorkers(storages store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSessionCleanupWorker(storages.SessionRepository, cfg.SessionCleanupInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
