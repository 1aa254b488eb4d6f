package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"relocation_quest/internal/domain"
)

const recentTopicsLimit = 3

type UserService struct {
	profiles   UserDataStore
	queries    UserQueryStore
	tableReady atomic.Bool
	logger     *slog.Logger
}

func NewUserService(profiles UserDataStore, queries UserQueryStore, logger *slog.Logger) *UserService {
	return &UserService{
		profiles: profiles,
		queries:  queries,
		logger:   logger.With("component", "user"),
	}
}

// ensureTable provisions user_data once per process. Failed attempts are
// retried on the next call.
func (s *UserService) ensureTable(ctx context.Context) error {
	if s.tableReady.Load() {
		return nil
	}
	if err := s.profiles.EnsureTable(ctx); err != nil {
		return err
	}
	s.tableReady.Store(true)
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, user *domain.SessionUser) (*domain.UserProfile, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", user.ID, err)
	}
	return profile, nil
}

// UpdateProfile replaces the editable fields wholesale. A blank preferred
// name is stored as NULL.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.SessionUser, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	if update.PreferredName != nil && strings.TrimSpace(*update.PreferredName) == "" {
		update.PreferredName = nil
	}

	profile, err := s.profiles.Upsert(ctx, user.ID, user.Email, update)
	if err != nil {
		return nil, fmt.Errorf("save profile for %s: %w", user.ID, err)
	}

	s.logger.Info("profile updated",
		"user_id", user.ID,
		"favorite_topics", len(update.FavoriteTopics),
	)
	return profile, nil
}

// RecentActivity never fails. Personalization is optional, so any problem
// yields the empty payload.
func (s *UserService) RecentActivity(ctx context.Context, userID string) *domain.RecentActivity {
	if userID == "" {
		return domain.EmptyActivity()
	}

	topics, err := s.queries.RecentTopics(ctx, userID, recentTopicsLimit)
	if err != nil {
		s.logger.Warn("recent topics unavailable", "user_id", userID, "error", err)
		return domain.EmptyActivity()
	}

	stats, err := s.queries.VisitStats(ctx, userID)
	if err != nil {
		s.logger.Warn("visit stats unavailable", "user_id", userID, "error", err)
		return domain.EmptyActivity()
	}

	return &domain.RecentActivity{
		Topics:      topics,
		VisitCount:  stats.VisitCount,
		IsReturning: stats.VisitCount > 1,
		FirstVisit:  stats.FirstVisit,
		LastVisit:   stats.LastVisit,
	}
}
