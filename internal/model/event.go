package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventStatus 活動生命週期狀態
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// IsValid 驗證狀態是否有效
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// EventType is the listing filter on the virtual flag.
type EventType string

const (
	EventTypeAll        EventType = "all"
	EventTypeVirtual    EventType = "virtual"
	EventTypePresencial EventType = "presencial"
)

// ParseEventType maps a query value to an EventType; anything unknown is "all".
func ParseEventType(s string) EventType {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case EventTypeVirtual:
		return EventTypeVirtual
	case EventTypePresencial:
		return EventTypePresencial
	}
	return EventTypeAll
}

// VirtualFilter returns the equality value for is_virtual, or nil for "all".
func (t EventType) VirtualFilter() *bool {
	switch t {
	case EventTypeVirtual:
		v := true
		return &v
	case EventTypePresencial:
		v := false
		return &v
	}
	return nil
}

// EventPhase selects rows relative to the query time.
type EventPhase string

const (
	EventPhaseUpcoming EventPhase = "upcoming"
	EventPhasePast     EventPhase = "past"
	EventPhaseAuto     EventPhase = "auto"
)

func ParseEventPhase(s string) EventPhase {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming", "proximos":
		return EventPhaseUpcoming
	case "past", "pasados":
		return EventPhasePast
	}
	return EventPhaseAuto
}

type Event struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	Title              string      `json:"title" db:"title"`
	Description        string      `json:"description" db:"description"`
	StartDate          time.Time   `json:"start_date" db:"start_date"`
	EndDate            time.Time   `json:"end_date" db:"end_date"`
	Location           *string     `json:"location" db:"location"`
	IsVirtual          bool        `json:"is_virtual" db:"is_virtual"`
	ImageURL           *string     `json:"image_url" db:"image_url"`
	MaxParticipants    *int        `json:"max_participants" db:"max_participants"`
	Status             EventStatus `json:"status" db:"status"`
	OrganizerID        uuid.UUID   `json:"organizer_id" db:"organizer_id"`
	TermsAndConditions *string     `json:"terms_and_conditions,omitempty" db:"terms_and_conditions"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`

	// 查詢當下計算，不落地
	IsUpcoming *bool `json:"isUpcoming,omitempty" db:"-"`
}

// EventInput 建立/更新活動的欄位
type EventInput struct {
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	StartDate          time.Time   `json:"start_date"`
	EndDate            time.Time   `json:"end_date"`
	Location           *string     `json:"location"`
	IsVirtual          bool        `json:"is_virtual"`
	MaxParticipants    *int        `json:"max_participants"`
	Status             EventStatus `json:"status"`
	ImageURL           *string     `json:"image_url"`
	TermsAndConditions *string     `json:"terms_and_conditions"`
}

// EventFilter 對 events 表的查詢條件
type EventFilter struct {
	Term      string
	Type      EventType
	Phase     EventPhase // upcoming 或 past；其他值不限制時間
	Now       time.Time
	Published bool
	Limit     int // 0 表示全部
	Offset    int
}

// EventCounts 後台統計用
type EventCounts struct {
	Total     int
	Published int
	Upcoming  int
}
