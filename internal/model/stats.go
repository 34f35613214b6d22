package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DashboardOverview 後台首頁統計
type DashboardOverview struct {
	TotalEvents       int      `json:"total_events"`
	PublishedEvents   int      `json:"published_events"`
	UpcomingEvents    int      `json:"upcoming_events"`
	TotalParticipants int      `json:"total_participants"`
	RecentEvents      []*Event `json:"recent_events"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type EventParticipation struct {
	EventID      uuid.UUID `json:"event_id"`
	Title        string    `json:"title"`
	Participants int       `json:"participants"`
}

type DashboardAnalytics struct {
	TotalEvents       int                   `json:"total_events"`
	TotalParticipants int                   `json:"total_participants"`
	TotalFeedback     int                   `json:"total_feedback"`
	AvgRating         float64               `json:"avg_rating"`
	EventsByMonth     []MonthCount          `json:"events_by_month"`
	TopEvents         []*EventParticipation `json:"top_events"`
}
