package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

type eventLister interface {
	ListFrom(ctx context.Context, fromDate string) ([]models.Event, error)
}

type memberLister interface {
	List(ctx context.Context) ([]models.FamilyMember, error)
	Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error)
}

// OccasionService projects birthdays and anniversaries onto the calendar
// and merges them with explicit events into one feed.
type OccasionService struct {
	Members memberLister
	Events  eventLister
	Clock   timeutil.Clock
}

func NewOccasionService(members memberLister, events eventLister, clock timeutil.Clock) *OccasionService {
	return &OccasionService{Members: members, Events: events, Clock: clock}
}

// NextOccurrence anchors a date's month/day to the current year, rolling to
// next year when it has already passed. Today counts as "not passed", so a
// birthday today yields zero days until. Feb-29 normalizes to Feb-28 in
// non-leap years.
func NextOccurrence(dateStr string, today time.Time) (time.Time, int, error) {
	d, err := timeutil.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, 0, err
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := anchorToYear(d.Month(), d.Day(), today.Year())
	if next.Before(today) {
		next = anchorToYear(d.Month(), d.Day(), today.Year()+1)
	}

	days := int(next.Sub(today).Hours() / 24)
	return next, days, nil
}

func anchorToYear(month time.Month, day int, year int) time.Time {
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// UpcomingBirthdays returns the next birthday projection per living member
// with a birth date, ordered soonest first.
func (s *OccasionService) UpcomingBirthdays(ctx context.Context) ([]models.CalendarEntry, error) {
	members, err := s.Members.List(ctx)
	if err != nil {
		return nil, err
	}
	return projectBirthdays(members, s.Clock.Now()), nil
}

func projectBirthdays(members []models.FamilyMember, today time.Time) []models.CalendarEntry {
	entries := []models.CalendarEntry{}
	for i := range members {
		m := &members[i]
		if m.Deceased() || m.BirthDate == nil || *m.BirthDate == "" {
			continue
		}
		next, days, err := NextOccurrence(*m.BirthDate, today)
		if err != nil {
			continue
		}
		id := m.MemberID
		entries = append(entries, models.CalendarEntry{
			Date:      next.Format(timeutil.DateLayout),
			Type:      models.CalendarTypeBirthday,
			Title:     fmt.Sprintf("%s's birthday", m.Name),
			DaysUntil: days,
			MemberID:  &id,
		})
	}
	sortEntries(entries)
	return entries
}

// emitsAnniversary reports whether a member's own iteration can produce an
// anniversary entry: linked, dated, and living.
func emitsAnniversary(m *models.FamilyMember) bool {
	return m.SpouseID != nil && m.AnniversaryDate != nil && *m.AnniversaryDate != "" && !m.Deceased()
}

// projectAnniversaries emits one entry per married couple with a recorded
// anniversary. Of the spouses able to emit, the lower member id carries the
// entry so a couple never appears twice; a spouse that cannot emit (deceased
// or unresolvable) never suppresses the other side's entry.
func projectAnniversaries(members []models.FamilyMember, today time.Time) []models.CalendarEntry {
	byID := make(map[models.MemberID]*models.FamilyMember, len(members))
	for i := range members {
		byID[members[i].MemberID] = &members[i]
	}

	entries := []models.CalendarEntry{}
	for i := range members {
		m := &members[i]
		if !emitsAnniversary(m) {
			continue
		}
		spouse, ok := byID[*m.SpouseID]
		if ok && spouse.MemberID < m.MemberID && emitsAnniversary(spouse) {
			continue // the spouse's iteration emits this couple
		}

		next, days, err := NextOccurrence(*m.AnniversaryDate, today)
		if err != nil {
			continue
		}

		title := fmt.Sprintf("%s's anniversary", m.Name)
		if ok {
			title = fmt.Sprintf("%s & %s's anniversary", m.Name, spouse.Name)
		}
		id := m.MemberID
		entries = append(entries, models.CalendarEntry{
			Date:      next.Format(timeutil.DateLayout),
			Type:      models.CalendarTypeAnniversary,
			Title:     title,
			DaysUntil: days,
			MemberID:  &id,
		})
	}
	sortEntries(entries)
	return entries
}

// UpcomingAnniversaries returns the next anniversary projection per couple
func (s *OccasionService) UpcomingAnniversaries(ctx context.Context) ([]models.CalendarEntry, error) {
	members, err := s.Members.List(ctx)
	if err != nil {
		return nil, err
	}
	return projectAnniversaries(members, s.Clock.Now()), nil
}

// CalendarFeed merges occasion projections with explicit events into one
// date-ordered sequence.
func (s *OccasionService) CalendarFeed(ctx context.Context) ([]models.CalendarEntry, error) {
	members, err := s.Members.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Clock.Now()
	todayStr := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).Format(timeutil.DateLayout)

	events, err := s.Events.ListFrom(ctx, todayStr)
	if err != nil {
		return nil, err
	}

	return mergeFeed(members, events, today), nil
}

func mergeFeed(members []models.FamilyMember, events []models.Event, today time.Time) []models.CalendarEntry {
	entries := projectBirthdays(members, today)
	entries = append(entries, projectAnniversaries(members, today)...)

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for i := range events {
		e := &events[i]
		d, err := timeutil.ParseDate(e.EventDate)
		if err != nil {
			continue
		}
		eventID := e.ID
		entries = append(entries, models.CalendarEntry{
			Date:      e.EventDate,
			Type:      e.EventType,
			Title:     e.Title,
			DaysUntil: int(d.Sub(day).Hours() / 24),
			EventID:   &eventID,
		})
	}

	sortEntries(entries)
	return entries
}

func sortEntries(entries []models.CalendarEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		if entries[i].Type != entries[j].Type {
			return entries[i].Type < entries[j].Type
		}
		return entries[i].Title < entries[j].Title
	})
}
