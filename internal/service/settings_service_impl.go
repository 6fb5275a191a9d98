package service

import (
	"context"
	"fmt"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
	"github.com/calebmorris/pacer/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, cfg domain.Settings) (domain.Settings, error) {
	// Clock strings and the timezone fail loudly; numeric tunables are
	// clamped silently by Normalize on the way in.
	for _, clock := range []string{cfg.NotifyStart, cfg.NotifyEnd, cfg.WorkStart, cfg.WorkEnd} {
		if clock == "" {
			continue
		}
		if _, err := forecast.ParseClock(clock); err != nil {
			return domain.Settings{}, fmt.Errorf("invalid clock %q: %w", clock, err)
		}
	}
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return domain.Settings{}, fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
		}
	}

	cfg = cfg.Normalize()
	if err := s.settings.Upsert(ctx, cfg); err != nil {
		return domain.Settings{}, err
	}
	return cfg, nil
}
