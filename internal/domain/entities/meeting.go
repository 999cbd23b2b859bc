package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingType represents the kind of meeting
type MeetingType string

const (
	MeetingTypeRegular   MeetingType = "regular"
	MeetingTypePeriodic  MeetingType = "periodic"
	MeetingTypeEmergency MeetingType = "emergency"
	MeetingTypeWorkshop  MeetingType = "workshop"
)

// MeetingTypes lists every known meeting type
var MeetingTypes = []MeetingType{MeetingTypeRegular, MeetingTypePeriodic, MeetingTypeEmergency, MeetingTypeWorkshop}

// IsValid checks if the meeting type is known
func (t MeetingType) IsValid() bool {
	for _, v := range MeetingTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AttendanceType represents where the meeting takes place
type AttendanceType string

const (
	AttendanceInPerson AttendanceType = "in_person"
	AttendanceOnline   AttendanceType = "online"
	AttendanceHybrid   AttendanceType = "hybrid"
)

// IsValid checks if the attendance type is known
func (t AttendanceType) IsValid() bool {
	switch t {
	case AttendanceInPerson, AttendanceOnline, AttendanceHybrid:
		return true
	}
	return false
}

// MeetingStatus represents the current status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
	MeetingStatusPostponed  MeetingStatus = "postponed"
)

// MeetingStatuses lists every known meeting status
var MeetingStatuses = []MeetingStatus{
	MeetingStatusScheduled,
	MeetingStatusInProgress,
	MeetingStatusCompleted,
	MeetingStatusCancelled,
	MeetingStatusPostponed,
}

// IsValid checks if the meeting status is known
func (s MeetingStatus) IsValid() bool {
	for _, v := range MeetingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StartTimeLayout is the wall-clock format of Meeting.StartTime
const StartTimeLayout = "15:04"

// Meeting represents a scheduled meeting
type Meeting struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	MeetingType     MeetingType    `gorm:"type:varchar(20);not null;default:'regular';index" json:"meeting_type"`
	Date            time.Time      `gorm:"type:date;not null;index" json:"date"`
	StartTime       string         `gorm:"type:varchar(5);not null" json:"start_time"`
	DurationMinutes int            `gorm:"not null;default:60" json:"duration"`
	Location        *string        `gorm:"type:varchar(255)" json:"location,omitempty"`
	MeetingLink     *string        `gorm:"type:text" json:"meeting_link,omitempty"`
	AttendanceType  AttendanceType `gorm:"type:varchar(20);not null;default:'in_person'" json:"attendance_type"`
	Status          MeetingStatus  `gorm:"column:meeting_status;type:varchar(20);not null;default:'scheduled';index" json:"meeting_status"`
	FolderID        *uuid.UUID     `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	Folder          *MeetingFolder `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	CreatedBy       uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	Version         int            `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// ParseStartTime validates a "HH:MM" wall-clock string
func ParseStartTime(s string) (time.Duration, error) {
	t, err := time.Parse(StartTimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("start_time must be HH:MM: %w", err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// StartsAt combines date and start time in loc
func (m *Meeting) StartsAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	day := time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, loc)
	offset, err := ParseStartTime(m.StartTime)
	if err != nil {
		return day
	}
	return day.Add(offset)
}

// EndsAt is StartsAt plus the duration
func (m *Meeting) EndsAt(loc *time.Location) time.Time {
	return m.StartsAt(loc).Add(time.Duration(m.DurationMinutes) * time.Minute)
}

// IsClosed reports whether the meeting no longer takes changes to its schedule
func (m *Meeting) IsClosed() bool {
	return m.Status == MeetingStatusCompleted || m.Status == MeetingStatusCancelled
}

// IsUpcoming reports whether the meeting is still expected to happen within window of now
func (m *Meeting) IsUpcoming(now time.Time, window time.Duration) bool {
	if m.Status != MeetingStatusScheduled && m.Status != MeetingStatusPostponed {
		return false
	}
	start := m.StartsAt(now.Location())
	return !start.Before(now) && start.Before(now.Add(window))
}
