package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Decision is the single admin-recorded outcome of an idea
type Decision struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IdeaID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"idea_id"`
	Status    IdeaStatus `gorm:"type:varchar(30);not null" json:"status"`
	Reason    string     `gorm:"type:text" json:"reason"`
	Assignee  string     `gorm:"type:text;not null;default:'[]'" json:"-"`
	Timeline  *string    `gorm:"type:varchar(255)" json:"timeline,omitempty"`
	Budget    *string    `gorm:"type:varchar(255)" json:"budget,omitempty"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Decision
func (Decision) TableName() string {
	return "decisions"
}

// Assignee is one person responsible for executing a decision
type Assignee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Responsibility string `json:"responsibility"`
}

// Assignees decodes the stored assignee column
func (d *Decision) Assignees() []Assignee {
	return DecodeAssignees(d.Assignee)
}

// SetAssignees encodes the list into the assignee column
func (d *Decision) SetAssignees(list []Assignee) error {
	encoded, err := EncodeAssignees(list)
	if err != nil {
		return err
	}
	d.Assignee = encoded
	return nil
}

// EncodeAssignees serializes assignees in order; nil encodes as an empty list
func EncodeAssignees(list []Assignee) (string, error) {
	if list == nil {
		list = []Assignee{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeAssignees parses the stored column. Older rows hold a plain name instead of JSON;
// those come back as a single assignee with that name.
func DecodeAssignees(raw string) []Assignee {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []Assignee{}
	}

	var list []Assignee
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		if list == nil {
			return []Assignee{}
		}
		return list
	}

	var single Assignee
	if err := json.Unmarshal([]byte(raw), &single); err == nil && single.Name != "" {
		return []Assignee{single}
	}

	return []Assignee{{Name: raw}}
}
