package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingAgendaItem is one ordered point on the agenda
type MeetingAgendaItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	Presenter       *string   `gorm:"type:varchar(255)" json:"presenter,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Position        int       `gorm:"not null;default:0" json:"position"`
	CreatedAt       time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingAgendaItem
func (MeetingAgendaItem) TableName() string {
	return "meeting_agenda_items"
}

// MeetingMinutes is the single minutes document of a meeting
type MeetingMinutes struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Summary    *string   `gorm:"type:text" json:"summary,omitempty"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingMinutes
func (MeetingMinutes) TableName() string {
	return "meeting_minutes"
}
