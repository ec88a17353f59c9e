package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
	defaults domain.UserProfile
}

// NewProfileService returns the stored profile, falling back to defaults
// field by field.
func NewProfileService(profiles repository.UserProfileRepo, defaults domain.UserProfile) ProfileService {
	return &profileService{profiles: profiles, defaults: defaults}
}

func (s *profileService) Current(ctx context.Context) (domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.UserProfile{}, fmt.Errorf("loading user profile: %w", err)
	}
	p.ID = domain.CoalesceStr(p.ID, s.defaults.ID)
	p.Name = domain.CoalesceStr(p.Name, s.defaults.Name)
	if p.WeeklyTargetHours <= 0 {
		p.WeeklyTargetHours = s.defaults.WeeklyTarget()
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	cur, err := s.Current(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if v := strings.TrimSpace(p.ID); v != "" {
		cur.ID = v
	}
	if v := strings.TrimSpace(p.Name); v != "" {
		cur.Name = v
	}
	if p.WeeklyTargetHours < 0 {
		return domain.UserProfile{}, &repository.ValidationError{Fields: []string{"weekly target must not be negative"}}
	}
	if p.WeeklyTargetHours > 0 {
		cur.WeeklyTargetHours = p.WeeklyTargetHours
	}
	if err := s.profiles.Upsert(ctx, cur); err != nil {
		return domain.UserProfile{}, err
	}
	return cur, nil
}
