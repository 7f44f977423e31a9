package domain

import "time"

// Venue is the local record of a directory business. It is created lazily the
// first time anyone marks attendance and is never updated.
type Venue struct {
	ID        string
	YelpID    string
	CreatedAt time.Time
}

// Attendance links a user to a venue they intend to visit.
type Attendance struct {
	UserID    string
	VenueID   string
	CreatedAt time.Time
}
