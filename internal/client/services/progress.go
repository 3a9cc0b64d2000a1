// Package services contains the application services behind the CLI.
// This file defines the progress service that refreshes the cached progress
// from the backend.
package services

import (
	"context"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/logging"
)

// ProgressService re-fetches the authoritative progress on demand.
type ProgressService interface {
	// Refresh overwrites the cached progress on success. Failures are logged
	// and leave the cache untouched; the result only says whether it changed.
	Refresh(ctx context.Context) bool
}

type progressService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger
}

// NewProgressService constructs a ProgressService that syncs from the backend
// client into the session store.
func NewProgressService(c client.Client, store SessionStore, log logging.Logger) ProgressService {
	return &progressService{client: c, store: store, log: log}
}

func (s *progressService) Refresh(ctx context.Context) bool {
	resp, err := s.client.Progress(ctx)
	if err != nil {
		s.log.Error(ctx, "progress fetch failed", "error", err)
		return false
	}

	up := resp.UserProgress
	m := up.TopicProgress.Completed()
	if err := s.store.SaveProgress(ctx, m, up.ProblemsProgress); err != nil {
		s.log.Error(ctx, "progress saving failed", "error", err)
		return false
	}

	s.log.Debug(ctx, "progress refreshed", "topics_completed", len(m), "topics_with_solutions", len(up.ProblemsProgress))
	return true
}
