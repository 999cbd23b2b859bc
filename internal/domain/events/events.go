// Package events describes the change notifications pushed to connected clients.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type names what happened to the entity
type Type string

const (
	IdeaCreated         Type = "idea.created"
	IdeaUpdated         Type = "idea.updated"
	IdeaDeleted         Type = "idea.deleted"
	DiscussionAdjusted  Type = "discussion.adjusted"
	DiscussionEnded     Type = "discussion.ended"
	CommentCreated      Type = "comment.created"
	CommentDeleted      Type = "comment.deleted"
	VoteCast            Type = "vote.cast"
	VoteRetracted       Type = "vote.retracted"
	DecisionRecorded    Type = "decision.recorded"
	DecisionDeleted     Type = "decision.deleted"
	MeetingCreated      Type = "meeting.created"
	MeetingUpdated      Type = "meeting.updated"
	MeetingDeleted      Type = "meeting.deleted"
	ParticipantsChanged Type = "participants.changed"
	AgendaChanged       Type = "agenda.changed"
	MinutesUpdated      Type = "minutes.updated"
	TasksChanged        Type = "tasks.changed"
)

const (
	ideaPrefix    = "idea:"
	meetingPrefix = "meeting:"
)

// Event is one change notification. Version is the entity version after the change,
// so a client can drop pushes older than what it already fetched.
type Event struct {
	Topic   string      `json:"topic"`
	Type    Type        `json:"type"`
	ID      uuid.UUID   `json:"id"`
	Version int         `json:"version,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Publisher pushes events to subscribers. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// IdeaTopic is the topic of one idea and everything under it
func IdeaTopic(id uuid.UUID) string { return ideaPrefix + id.String() }

// MeetingTopic is the topic of one meeting and everything under it
func MeetingTopic(id uuid.UUID) string { return meetingPrefix + id.String() }

// ForIdea builds an event on the idea topic
func ForIdea(t Type, ideaID uuid.UUID, version int, payload interface{}) Event {
	return Event{Topic: IdeaTopic(ideaID), Type: t, ID: ideaID, Version: version, Payload: payload, At: time.Now().UTC()}
}

// ForMeeting builds an event on the meeting topic
func ForMeeting(t Type, meetingID uuid.UUID, version int, payload interface{}) Event {
	return Event{Topic: MeetingTopic(meetingID), Type: t, ID: meetingID, Version: version, Payload: payload, At: time.Now().UTC()}
}

// Matches reports whether a subscription receives topic. A subscription ending
// in ":*" receives every topic with that prefix, e.g. "idea:*".
func Matches(subscription, topic string) bool {
	if subscription == topic {
		return true
	}
	if prefix, ok := strings.CutSuffix(subscription, "*"); ok && strings.HasSuffix(prefix, ":") {
		return strings.HasPrefix(topic, prefix)
	}
	return false
}

// ParseTopic splits "idea:<uuid>" into its kind and id. Wildcards return uuid.Nil.
func ParseTopic(topic string) (kind string, id uuid.UUID, ok bool) {
	kind, rest, found := strings.Cut(topic, ":")
	if !found || (kind != "idea" && kind != "meeting") {
		return "", uuid.Nil, false
	}
	if rest == "*" {
		return kind, uuid.Nil, true
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return "", uuid.Nil, false
	}
	return kind, id, true
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// Nop discards every event
var Nop Publisher = nopPublisher{}
