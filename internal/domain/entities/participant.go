package entities

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRole represents the role of a participant in a meeting
type ParticipantRole string

const (
	ParticipantRoleChairman  ParticipantRole = "chairman"
	ParticipantRoleSecretary ParticipantRole = "secretary"
	ParticipantRoleMember    ParticipantRole = "member"
	ParticipantRoleObserver  ParticipantRole = "observer"
	ParticipantRoleOrganizer ParticipantRole = "organizer"
	ParticipantRolePresenter ParticipantRole = "presenter"
	ParticipantRoleGuest     ParticipantRole = "guest"
)

// ParticipantRoles lists every known role
var ParticipantRoles = []ParticipantRole{
	ParticipantRoleChairman,
	ParticipantRoleSecretary,
	ParticipantRoleMember,
	ParticipantRoleObserver,
	ParticipantRoleOrganizer,
	ParticipantRolePresenter,
	ParticipantRoleGuest,
}

// IsValid checks if the role is known
func (r ParticipantRole) IsValid() bool {
	for _, v := range ParticipantRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CanRecordMinutes reports whether the role may write minutes
func (r ParticipantRole) CanRecordMinutes() bool {
	switch r {
	case ParticipantRoleChairman, ParticipantRoleSecretary, ParticipantRoleOrganizer:
		return true
	}
	return false
}

// AttendanceStatus represents a participant's attendance
type AttendanceStatus string

const (
	AttendancePending   AttendanceStatus = "pending"
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceAttended  AttendanceStatus = "attended"
	AttendanceAbsent    AttendanceStatus = "absent"
)

// AttendanceStatuses lists every known attendance status
var AttendanceStatuses = []AttendanceStatus{AttendancePending, AttendanceConfirmed, AttendanceAttended, AttendanceAbsent}

// IsValid checks if the attendance status is known
func (s AttendanceStatus) IsValid() bool {
	for _, v := range AttendanceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// MeetingParticipant is a person invited to a meeting. Guests may have no account.
type MeetingParticipant struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"meeting_id"`
	UserID           *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User             *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Email            *string          `gorm:"type:varchar(255)" json:"email,omitempty"`
	Role             ParticipantRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	AttendanceStatus AttendanceStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"attendance_status"`
	CreatedAt        time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingParticipant
func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

// IsUser reports whether the participant is the given account
func (p *MeetingParticipant) IsUser(userID uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == userID
}

// FindParticipant returns the participant entry of userID, or nil
func FindParticipant(list []*MeetingParticipant, userID uuid.UUID) *MeetingParticipant {
	for _, p := range list {
		if p.IsUser(userID) {
			return p
		}
	}
	return nil
}

// AttendanceRate is attended / (attended + absent); zero when nobody was marked yet
func AttendanceRate(list []*MeetingParticipant) float64 {
	var attended, marked int
	for _, p := range list {
		switch p.AttendanceStatus {
		case AttendanceAttended:
			attended++
			marked++
		case AttendanceAbsent:
			marked++
		}
	}
	if marked == 0 {
		return 0
	}
	return float64(attended) / float64(marked)
}
