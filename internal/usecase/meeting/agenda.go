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

// AddAgendaItem appends an item to the end of the agenda
func (s *MeetingService) AddAgendaItem(ctx context.Context, input AgendaItemInput) (*entities.MeetingAgendaItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || (input.DurationMinutes != nil && *input.DurationMinutes < 0) {
		return nil, ucerrors.ErrInvalidInput
	}
	m, err := s.writableMeeting(ctx, input.Principal, input.MeetingID)
	if err != nil {
		return nil, err
	}

	position, err := s.agendaRepo.NextPosition(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda position: %w", err)
	}

	item := &entities.MeetingAgendaItem{
		MeetingID:       m.ID,
		Title:           title,
		Description:     trimmed(input.Description),
		Presenter:       trimmed(input.Presenter),
		DurationMinutes: input.DurationMinutes,
		Position:        position,
	}
	if err := s.agendaRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create agenda item: %w", err)
	}

	s.publishMeeting(ctx, events.AgendaChanged, m, item)
	return item, nil
}

// ListAgenda returns the agenda in order
func (s *MeetingService) ListAgenda(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingAgendaItem, error) {
	m, _, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	items, err := s.agendaRepo.ListByMeeting(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", err)
	}
	return items, nil
}

// UpdateAgendaItem changes an agenda item in place
func (s *MeetingService) UpdateAgendaItem(ctx context.Context, input UpdateAgendaItemInput) (*entities.MeetingAgendaItem, error) {
	item, err := s.findAgendaItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	m, err := s.writableMeeting(ctx, input.Principal, item.MeetingID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		item.Title = title
	}
	if input.Description != nil {
		item.Description = trimmed(input.Description)
	}
	if input.Presenter != nil {
		item.Presenter = trimmed(input.Presenter)
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes < 0 {
			return nil, ucerrors.ErrInvalidInput
		}
		item.DurationMinutes = input.DurationMinutes
	}

	if err := s.agendaRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update agenda item: %w", err)
	}
	s.publishMeeting(ctx, events.AgendaChanged, m, item)
	return item, nil
}

// DeleteAgendaItem removes an agenda item
func (s *MeetingService) DeleteAgendaItem(ctx context.Context, p auth.Principal, itemID uuid.UUID) error {
	item, err := s.findAgendaItem(ctx, itemID)
	if err != nil {
		return err
	}
	m, err := s.writableMeeting(ctx, p, item.MeetingID)
	if err != nil {
		return err
	}
	if err := s.agendaRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete agenda item: %w", err)
	}
	s.publishMeeting(ctx, events.AgendaChanged, m, map[string]string{"removed": item.ID.String()})
	return nil
}

// ReorderAgenda sets the agenda order. ids must list every item of the meeting exactly once.
func (s *MeetingService) ReorderAgenda(ctx context.Context, p auth.Principal, meetingID uuid.UUID, ids []uuid.UUID) ([]*entities.MeetingAgendaItem, error) {
	m, err := s.writableMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}

	items, err := s.agendaRepo.ListByMeeting(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", err)
	}
	if !isPermutation(items, ids) {
		return nil, ucerrors.ErrInvalidAgendaOrder
	}

	if err := s.agendaRepo.Reorder(ctx, m.ID, ids); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrInvalidAgendaOrder
		}
		return nil, fmt.Errorf("failed to reorder agenda: %w", err)
	}

	reordered, err := s.agendaRepo.ListByMeeting(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", err)
	}
	s.publishMeeting(ctx, events.AgendaChanged, m, reordered)
	return reordered, nil
}

func isPermutation(items []*entities.MeetingAgendaItem, ids []uuid.UUID) bool {
	if len(items) != len(ids) {
		return false
	}
	pending := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		pending[it.ID] = true
	}
	for _, id := range ids {
		if !pending[id] {
			return false
		}
		delete(pending, id)
	}
	return true
}

func (s *MeetingService) findAgendaItem(ctx context.Context, id uuid.UUID) (*entities.MeetingAgendaItem, error) {
	item, err := s.agendaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrAgendaItemNotFound
		}
		return nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return item, nil
}

// GetMinutes returns the minutes of a meeting the caller can read
func (s *MeetingService) GetMinutes(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.MeetingMinutes, error) {
	m, _, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.minutesRepo.FindByMeeting(ctx, m.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}
	return minutes, nil
}

// UpsertMinutes writes the minutes. Allowed for writers and for the chairman, secretary or organizer.
func (s *MeetingService) UpsertMinutes(ctx context.Context, input MinutesInput) (*entities.MeetingMinutes, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ucerrors.ErrInvalidInput
	}
	m, a, err := s.loadMeeting(ctx, input.Principal, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if !a.canRecordMinutes() {
		return nil, ucerrors.ErrMeetingAccessDenied
	}

	minutes := &entities.MeetingMinutes{
		MeetingID:  m.ID,
		Content:    content,
		Summary:    trimmed(input.Summary),
		RecordedBy: input.Principal.UserID,
	}
	if err := s.minutesRepo.Upsert(ctx, minutes); err != nil {
		return nil, fmt.Errorf("failed to save minutes: %w", err)
	}

	s.logger.Info("✅ Minutes saved",
		zap.String("meeting_id", m.ID.String()),
		zap.String("recorded_by", minutes.RecordedBy.String()),
	)
	s.publishMeeting(ctx, events.MinutesUpdated, m, minutes)
	return minutes, nil
}
