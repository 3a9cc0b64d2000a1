// Package services contains the application services behind the CLI.
// This file defines the display preference service (color mode).
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/dmitrijs2005/cpguide/internal/logging"
)

type PreferenceService interface {
	Load(ctx context.Context) (models.ColorMode, error)
	Toggle(ctx context.Context) (models.ColorMode, error)
}

type preferenceService struct {
	store PreferenceStore
	log   logging.Logger
}

// NewPreferenceService constructs a PreferenceService over the given store.
func NewPreferenceService(store PreferenceStore, log logging.Logger) PreferenceService {
	return &preferenceService{store: store, log: log}
}

// Load returns the saved mode, light when none was saved.
func (p *preferenceService) Load(ctx context.Context) (models.ColorMode, error) {
	v, ok, err := p.store.ColorMode(ctx)
	if err != nil {
		return models.ColorModeLight, err
	}
	if !ok {
		return models.ColorModeLight, nil
	}
	return models.ParseColorMode(v), nil
}

func (p *preferenceService) Toggle(ctx context.Context) (models.ColorMode, error) {
	cur, err := p.Load(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	if err := p.store.SetColorMode(ctx, string(next)); err != nil {
		return cur, fmt.Errorf("color mode saving error: %w", err)
	}
	p.log.Debug(ctx, fmt.Sprintf("Switched to %s mode!", next))
	return next, nil
}
