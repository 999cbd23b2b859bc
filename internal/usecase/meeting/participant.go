package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// AddParticipant invites an account or a named guest; attendance starts as pending
func (s *MeetingService) AddParticipant(ctx context.Context, input AddParticipantInput) (*entities.MeetingParticipant, error) {
	role := input.Role
	if role == "" {
		role = entities.ParticipantRoleMember
	}
	if !role.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}

	m, err := s.writableMeeting(ctx, input.Principal, input.MeetingID)
	if err != nil {
		return nil, err
	}

	participant := &entities.MeetingParticipant{
		MeetingID:        m.ID,
		Name:             strings.TrimSpace(input.Name),
		Email:            trimmed(input.Email),
		Role:             role,
		AttendanceStatus: entities.AttendancePending,
	}

	if input.UserID != nil {
		user, err := s.userRepo.FindByID(ctx, *input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ucerrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if _, err := s.participantRepo.FindByMeetingAndUser(ctx, m.ID, user.ID); err == nil {
			return nil, ucerrors.ErrParticipantAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get participant: %w", err)
		}

		participant.UserID = &user.ID
		participant.User = user
		if participant.Name == "" {
			participant.Name = user.DisplayName()
		}
		if participant.Email == nil && user.Email != "" {
			email := user.Email
			participant.Email = &email
		}
	}
	if participant.Name == "" {
		return nil, ucerrors.ErrInvalidInput
	}

	if role == entities.ParticipantRoleChairman {
		if err := s.ensureNoChairman(ctx, m.ID, uuid.Nil); err != nil {
			return nil, err
		}
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if role == entities.ParticipantRoleChairman {
				if err := s.ensureNoChairman(ctx, m.ID, uuid.Nil); err != nil {
					return nil, err
				}
			}
			return nil, ucerrors.ErrParticipantAlreadyExists
		}
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	s.logger.Info("✅ Participant added",
		zap.String("meeting_id", m.ID.String()),
		zap.String("participant_id", participant.ID.String()),
		zap.String("role", string(role)),
	)
	s.publishMeeting(ctx, events.ParticipantsChanged, m, participant)
	return participant, nil
}

// ListParticipants lists the participants of a meeting the caller can read
func (s *MeetingService) ListParticipants(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	m, _, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.ListByMeeting(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// UpdateParticipantRole changes a participant's role, keeping at most one chairman
func (s *MeetingService) UpdateParticipantRole(ctx context.Context, p auth.Principal, participantID uuid.UUID, role entities.ParticipantRole) (*entities.MeetingParticipant, error) {
	if !role.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}
	participant, err := s.findParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	m, err := s.writableMeeting(ctx, p, participant.MeetingID)
	if err != nil {
		return nil, err
	}
	if participant.Role == role {
		return participant, nil
	}
	if role == entities.ParticipantRoleChairman {
		if err := s.ensureNoChairman(ctx, m.ID, participant.ID); err != nil {
			return nil, err
		}
	}

	participant.Role = role
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		// a role change only collides on the one-chairman index
		if errors.Is(err, gorm.ErrDuplicatedKey) && role == entities.ParticipantRoleChairman {
			return nil, ucerrors.ErrChairmanAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	s.publishMeeting(ctx, events.ParticipantsChanged, m, participant)
	return participant, nil
}

// UpdateAttendance marks attendance. Writers may mark anyone, participants only themselves.
func (s *MeetingService) UpdateAttendance(ctx context.Context, p auth.Principal, participantID uuid.UUID, status entities.AttendanceStatus) (*entities.MeetingParticipant, error) {
	if !status.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}
	participant, err := s.findParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	m, a, err := s.loadMeeting(ctx, p, participant.MeetingID)
	if err != nil {
		return nil, err
	}
	if !a.canWrite() && !participant.IsUser(p.UserID) {
		return nil, ucerrors.ErrMeetingAccessDenied
	}

	participant.AttendanceStatus = status
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.logger.Info("🔄 Attendance updated",
		zap.String("meeting_id", m.ID.String()),
		zap.String("participant_id", participant.ID.String()),
		zap.String("status", string(status)),
	)
	s.publishMeeting(ctx, events.ParticipantsChanged, m, participant)
	return participant, nil
}

// RemoveParticipant removes a participant from a meeting
func (s *MeetingService) RemoveParticipant(ctx context.Context, p auth.Principal, participantID uuid.UUID) error {
	participant, err := s.findParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	m, err := s.writableMeeting(ctx, p, participant.MeetingID)
	if err != nil {
		return err
	}
	if err := s.participantRepo.Delete(ctx, participant.ID); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	s.publishMeeting(ctx, events.ParticipantsChanged, m, map[string]string{"removed": participant.ID.String()})
	return nil
}

func (s *MeetingService) findParticipant(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// ensureNoChairman fails when someone other than except already chairs the meeting
func (s *MeetingService) ensureNoChairman(ctx context.Context, meetingID, except uuid.UUID) error {
	chairs, err := s.participantRepo.FindByRole(ctx, meetingID, entities.ParticipantRoleChairman)
	if err != nil {
		return fmt.Errorf("failed to check chairman: %w", err)
	}
	for _, c := range chairs {
		if c.ID != except {
			return ucerrors.ErrChairmanAlreadyAssigned
		}
	}
	return nil
}
