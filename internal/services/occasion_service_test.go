package services

import (
	"context"
	"testing"
	"time"

	"family-backend/internal/models"
	"family-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		today     time.Time
		wantDate  string
		wantDays  int
	}{
		{
			name:      "later this year",
			birthDate: "1990-11-05",
			today:     date(2026, time.August, 29),
			wantDate:  "2026-11-05",
			wantDays:  68,
		},
		{
			name:      "today counts as zero days",
			birthDate: "1990-08-29",
			today:     date(2026, time.August, 29),
			wantDate:  "2026-08-29",
			wantDays:  0,
		},
		{
			name:      "already passed rolls to next year",
			birthDate: "1990-08-28",
			today:     date(2026, time.August, 29),
			wantDate:  "2027-08-28",
			wantDays:  364,
		},
		{
			name:      "feb 29 normalizes to feb 28 in a non-leap year",
			birthDate: "1992-02-29",
			today:     date(2026, time.January, 15),
			wantDate:  "2026-02-28",
			wantDays:  44,
		},
		{
			name:      "feb 29 stays feb 29 in a leap year",
			birthDate: "1992-02-29",
			today:     date(2028, time.January, 15),
			wantDate:  "2028-02-29",
			wantDays:  45,
		},
		{
			name:      "century non-leap year",
			birthDate: "1992-02-29",
			today:     date(2100, time.February, 1),
			wantDate:  "2100-02-28",
			wantDays:  27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, days, err := NextOccurrence(tt.birthDate, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, next.Format(timeutil.DateLayout))
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestNextOccurrenceRange(t *testing.T) {
	// Whatever the inputs, the projection lands within one year.
	today := date(2026, time.August, 29)
	for _, d := range []string{"1950-01-01", "1999-12-31", "2000-02-29", "1970-08-29", "1970-08-30"} {
		_, days, err := NextOccurrence(d, today)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, days, 0, "date %s", d)
		assert.LessOrEqual(t, days, 366, "date %s", d)
	}
}

func TestNextOccurrenceRejectsBadDate(t *testing.T) {
	_, _, err := NextOccurrence("29-02-1992", date(2026, time.August, 29))
	assert.Error(t, err)
}

func TestUpcomingBirthdaysSkipsDeceasedAndDateless(t *testing.T) {
	members := newFakeMembers(
		member(1, "Asha", withBirth("1960-09-10")),
		member(2, "Ravi", withBirth("1958-03-02"), withDeath("2020-06-01")),
		member(3, "Kiran"),
	)
	svc := NewOccasionService(members, &fakeEvents{}, timeutil.FixedClock{T: date(2026, time.August, 29)})

	entries, err := svc.UpcomingBirthdays(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Asha's birthday", entries[0].Title)
	assert.Equal(t, "2026-09-10", entries[0].Date)
	assert.Equal(t, models.CalendarTypeBirthday, entries[0].Type)
}

func TestUpcomingAnniversariesOnePerCouple(t *testing.T) {
	members := newFakeMembers(
		member(1, "Asha", withSpouse(2), withAnniversary("1985-12-20")),
		member(2, "Mohan", withSpouse(1), withAnniversary("1985-12-20")),
	)
	svc := NewOccasionService(members, &fakeEvents{}, timeutil.FixedClock{T: date(2026, time.August, 29)})

	entries, err := svc.UpcomingAnniversaries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Asha & Mohan's anniversary", entries[0].Title)
	assert.Equal(t, "2026-12-20", entries[0].Date)
}

func TestUpcomingAnniversariesDanglingSpouse(t *testing.T) {
	// A recorded anniversary with an unresolvable spouse still projects once.
	members := newFakeMembers(
		member(5, "Leela", withSpouse(99), withAnniversary("1990-10-01")),
	)
	svc := NewOccasionService(members, &fakeEvents{}, timeutil.FixedClock{T: date(2026, time.August, 29)})

	entries, err := svc.UpcomingAnniversaries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Leela's anniversary", entries[0].Title)
}

func TestUpcomingAnniversariesDeceasedSpouse(t *testing.T) {
	// The living spouse emits the entry regardless of which side got the
	// lower member id.
	tests := []struct {
		name       string
		livingID   models.MemberID
		deceasedID models.MemberID
	}{
		{"deceased spouse has the lower id", 2, 1},
		{"deceased spouse has the higher id", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := newFakeMembers(
				member(tt.livingID, "Asha", withSpouse(tt.deceasedID), withAnniversary("1985-12-20")),
				member(tt.deceasedID, "Mohan", withSpouse(tt.livingID), withAnniversary("1985-12-20"), withDeath("2024-03-01")),
			)
			svc := NewOccasionService(members, &fakeEvents{}, timeutil.FixedClock{T: date(2026, time.August, 29)})

			entries, err := svc.UpcomingAnniversaries(context.Background())
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "Asha & Mohan's anniversary", entries[0].Title)
			require.NotNil(t, entries[0].MemberID)
			assert.Equal(t, tt.livingID, *entries[0].MemberID)
		})
	}
}

func TestUpcomingAnniversariesBothDeceased(t *testing.T) {
	members := newFakeMembers(
		member(1, "Asha", withSpouse(2), withAnniversary("1985-12-20"), withDeath("2023-01-01")),
		member(2, "Mohan", withSpouse(1), withAnniversary("1985-12-20"), withDeath("2024-03-01")),
	)
	svc := NewOccasionService(members, &fakeEvents{}, timeutil.FixedClock{T: date(2026, time.August, 29)})

	entries, err := svc.UpcomingAnniversaries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCalendarFeedMergesAndOrders(t *testing.T) {
	members := newFakeMembers(
		member(1, "Asha", withBirth("1960-09-10")),
		member(2, "Mohan", withSpouse(1)),
	)
	events := &fakeEvents{events: []models.Event{
		{ID: 7, Title: "Family reunion", EventDate: "2026-09-10", EventType: models.EventTypeEvent},
		{ID: 8, Title: "Diwali", EventDate: "2026-11-08", EventType: models.EventTypeHoliday},
	}}
	svc := NewOccasionService(members, events, timeutil.FixedClock{T: date(2026, time.August, 29)})

	feed, err := svc.CalendarFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// same date: birthday sorts before event (type ordering), then later dates
	assert.Equal(t, models.CalendarTypeBirthday, feed[0].Type)
	assert.Equal(t, "2026-09-10", feed[0].Date)
	assert.Equal(t, "Family reunion", feed[1].Title)
	assert.Equal(t, 12, feed[1].DaysUntil)
	assert.Equal(t, "Diwali", feed[2].Title)

	for i := 1; i < len(feed); i++ {
		assert.LessOrEqual(t, feed[i-1].Date, feed[i].Date)
	}
}
