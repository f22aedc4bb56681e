package service

import (
	"context"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/progression"
	"github.com/innerpath-app/innerpath/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

func (s *profileService) Setup(ctx context.Context, name string, theme domain.Theme) error {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return err
	}
	if name != "" {
		profile.Name = name
	}
	if theme != "" {
		switch theme {
		case domain.ThemeEmerald, domain.ThemeViolet, domain.ThemeSteel:
			profile.Theme = theme
		default:
			return fmt.Errorf("unknown theme %q", theme)
		}
	}
	return s.profiles.Upsert(ctx, profile)
}

func (s *profileService) SyncOnOpen(ctx context.Context, now time.Time) (int, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return 0, err
	}
	decayed := progression.DecayForAbsence(profile, now)
	if decayed == 0 {
		return 0, nil
	}
	progression.Touch(profile, now)
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return 0, err
	}
	return decayed, nil
}
