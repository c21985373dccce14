package models

// DashboardStats backs the dashboard aggregate endpoint
type DashboardStats struct {
	TotalMembers      int             `json:"total_members"`
	TotalUsers        int             `json:"total_users"`
	PendingUsers      int             `json:"pending_users"`
	TotalEvents       int             `json:"total_events"`
	ApprovedPhotos    int             `json:"approved_photos"`
	PendingPhotos     int             `json:"pending_photos"`
	UnreadCount       int             `json:"unread_notifications"`
	UpcomingOccasions []CalendarEntry `json:"upcoming_occasions"`
	RecentlyActive    []FamilyMember  `json:"recently_active"`
}
