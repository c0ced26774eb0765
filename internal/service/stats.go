package service

import (
	"context"
	"fmt"
	"time"

	"catalogbot/internal/repository"

	"go.uber.org/zap"
)

// Stats is the admin summary of the bot's audience
type Stats struct {
	Days          int
	TotalUsers    int
	NewUsersToday int
}

// StatsService handles statistics and audience reports
type StatsService struct {
	users      repository.UserRepository
	launchDate time.Time
	now        func() time.Time
	logger     *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(users repository.UserRepository, launchDate time.Time, logger *zap.Logger) *StatsService {
	return &StatsService{
		users:      users,
		launchDate: launchDate,
		now:        time.Now,
		logger:     logger,
	}
}

// Stats counts days since launch, all users and users joined in the last 24 hours
func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	fresh, err := s.users.CountJoinedSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	days := 0
	if !s.launchDate.IsZero() && now.After(s.launchDate) {
		days = int(now.Sub(s.launchDate).Hours() / 24)
	}

	s.logger.Debug("Stats computed",
		zap.Int("days", days),
		zap.Int("total", total),
		zap.Int("new", fresh),
	)

	return &Stats{Days: days, TotalUsers: total, NewUsersToday: fresh}, nil
}

// ChatIDs lists every known chat
func (s *StatsService) ChatIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.users.ListChatIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return ids, nil
}

// AdminChatIDs lists the chats of admins
func (s *StatsService) AdminChatIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.users.ListAdminChatIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin chats: %w", err)
	}
	return ids, nil
}
