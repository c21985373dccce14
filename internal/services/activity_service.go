package services

import (
	"context"
	"time"

	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

// Activity accumulation bounds.
const (
	// activityDebounce: a second tracked request inside this window is a
	// no-op, bounding write amplification under polling.
	activityDebounce = 30 * time.Second
	// activityGapCeiling: elapsed time above this is idle/disconnected and
	// is not accumulated.
	activityGapCeiling = 15 * time.Minute
)

type activityStore interface {
	Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error)
	UpdateActivity(ctx context.Context, id models.MemberID, lastActive time.Time, path string, today, monthly, yearly int64) error
}

// ActivityService rolls per-request elapsed time into daily/monthly/yearly
// counters on the member record. This is a plain read-modify-write;
// concurrent requests inside the debounce window race and the last write
// wins, which is the accepted loss model.
type ActivityService struct {
	Members activityStore
	Clock   timeutil.Clock
}

func NewActivityService(members activityStore, clock timeutil.Clock) *ActivityService {
	return &ActivityService{Members: members, Clock: clock}
}

// Track records activity for one member at the current instant.
func (s *ActivityService) Track(ctx context.Context, id models.MemberID, path string) error {
	m, err := s.Members.Get(ctx, id)
	if err != nil {
		return err
	}

	now := s.Clock.Now()

	if m.LastActive == nil {
		return s.Members.UpdateActivity(ctx, id, now, path, m.SessionToday, m.SessionMonthly, m.SessionYearly)
	}

	last := *m.LastActive
	elapsed := now.Sub(last)

	if elapsed >= 0 && elapsed < activityDebounce {
		return nil
	}

	today, monthly, yearly := rollover(m.SessionToday, m.SessionMonthly, m.SessionYearly, last, now)

	if elapsed > 0 && elapsed <= activityGapCeiling {
		secs := int64(elapsed / time.Second)
		today += secs
		monthly += secs
		yearly += secs
	}
	// negative or over-ceiling elapsed is a gap: accumulate nothing but
	// still advance last_active

	return s.Members.UpdateActivity(ctx, id, now, path, today, monthly, yearly)
}

// rollover zeroes the counters whose calendar bucket changed between the
// previous activity and now. Day, month and year are checked independently;
// a year change implies all three reset.
func rollover(today, monthly, yearly int64, last, now time.Time) (int64, int64, int64) {
	if !timeutil.SameDay(last, now) {
		today = 0
	}
	if last.Month() != now.Month() || last.Year() != now.Year() {
		monthly = 0
	}
	if last.Year() != now.Year() {
		yearly = 0
	}
	return today, monthly, yearly
}
