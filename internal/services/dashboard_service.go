package services

import (
	"context"
	"time"

	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

type memberCounter interface {
	Count(ctx context.Context) (int, error)
	ListRecentlyActive(ctx context.Context, since time.Time, limit int) ([]models.FamilyMember, error)
}

type userCounter interface {
	Count(ctx context.Context) (total int, pending int, err error)
}

type eventCounter interface {
	Count(ctx context.Context) (int, error)
}

type galleryCounter interface {
	CountByStatus(ctx context.Context) (approved int, pending int, err error)
}

type unreadCounter interface {
	CountUnread(ctx context.Context, recipientID models.MemberID) (int, error)
}

// DashboardService assembles the aggregate stats endpoint.
type DashboardService struct {
	Members       memberCounter
	Users         userCounter
	Events        eventCounter
	Gallery       galleryCounter
	Notifications unreadCounter
	Occasions     *OccasionService
	Clock         timeutil.Clock
}

func NewDashboardService(members memberCounter, users userCounter, events eventCounter,
	gallery galleryCounter, notifications unreadCounter, occasions *OccasionService, clock timeutil.Clock) *DashboardService {
	return &DashboardService{
		Members:       members,
		Users:         users,
		Events:        events,
		Gallery:       gallery,
		Notifications: notifications,
		Occasions:     occasions,
		Clock:         clock,
	}
}

// Stats gathers the dashboard counters. memberID may be nil for accounts
// not linked to a family member; their unread badge is zero.
func (s *DashboardService) Stats(ctx context.Context, memberID *models.MemberID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var err error
	if stats.TotalMembers, err = s.Members.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, stats.PendingUsers, err = s.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.Events.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ApprovedPhotos, stats.PendingPhotos, err = s.Gallery.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if memberID != nil {
		if stats.UnreadCount, err = s.Notifications.CountUnread(ctx, *memberID); err != nil {
			return nil, err
		}
	}

	feed, err := s.Occasions.CalendarFeed(ctx)
	if err != nil {
		return nil, err
	}
	if len(feed) > 10 {
		feed = feed[:10]
	}
	stats.UpcomingOccasions = feed

	active, err := s.Members.ListRecentlyActive(ctx, s.Clock.Now().Add(-24*time.Hour), 10)
	if err != nil {
		return nil, err
	}
	stats.RecentlyActive = active

	return stats, nil
}
