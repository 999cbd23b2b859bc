package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
)

const (
	upcomingWindow = 7 * 24 * time.Hour
	upcomingLimit  = 20
	overdueLimit   = 20
)

// GetDashboard aggregates the meetings the caller can see. Results are cached per caller and filter.
func (s *MeetingService) GetDashboard(ctx context.Context, p auth.Principal, input DashboardInput) (*Dashboard, error) {
	if input.FolderID != nil {
		if _, err := s.folderWithAccess(ctx, p, *input.FolderID, entities.FolderAccess.CanRead); err != nil {
			return nil, err
		}
	}

	key := dashboardKey(p, input)
	if s.cache != nil {
		var cached Dashboard
		ok, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.logger.Warn("⚠️ Failed to read cached dashboard", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return &cached, nil
		}
	}

	d, err := s.buildDashboard(ctx, p, input)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, d, s.cacheTTL); err != nil {
			s.logger.Warn("⚠️ Failed to cache dashboard", zap.String("key", key), zap.Error(err))
		}
	}
	return d, nil
}

func (s *MeetingService) buildDashboard(ctx context.Context, p auth.Principal, input DashboardInput) (*Dashboard, error) {
	now := s.now()
	filters := repositories.MeetingFilters{
		FolderID:  input.FolderID,
		From:      input.From,
		To:        input.To,
		VisibleTo: visibleTo(p),
	}

	byStatus, err := s.meetingRepo.CountGrouped(ctx, filters, "meeting_status")
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings by status: %w", err)
	}
	byType, err := s.meetingRepo.CountGrouped(ctx, filters, "meeting_type")
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings by type: %w", err)
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	until := today.Add(upcomingWindow)
	upcomingFilters := repositories.MeetingFilters{
		FolderID:  input.FolderID,
		From:      &today,
		To:        &until,
		VisibleTo: filters.VisibleTo,
		Limit:     upcomingLimit,
		SortOrder: "asc",
	}
	candidates, _, err := s.meetingRepo.List(ctx, upcomingFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming meetings: %w", err)
	}
	upcoming := make([]*entities.Meeting, 0, len(candidates))
	for _, m := range candidates {
		if m.IsUpcoming(now, upcomingWindow) {
			upcoming = append(upcoming, m)
		}
	}

	tasksByStatus, err := s.taskRepo.CountByStatus(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	overdue, err := s.taskRepo.ListOverdue(ctx, filters, today, overdueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}

	attendance, err := s.participantRepo.CountAttendance(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	return &Dashboard{
		TotalMeetings:  total,
		ByStatus:       byStatus,
		ByType:         byType,
		Upcoming:       upcoming,
		TasksByStatus:  tasksByStatus,
		OverdueTasks:   overdue,
		Attendance:     attendance,
		AttendanceRate: attendanceRate(attendance),
		GeneratedAt:    now.UTC(),
	}, nil
}

// attendanceRate is attended / (attended + absent), zero when nobody was marked
func attendanceRate(counts map[string]int64) float64 {
	attended := counts[string(entities.AttendanceAttended)]
	marked := attended + counts[string(entities.AttendanceAbsent)]
	if marked == 0 {
		return 0
	}
	return float64(attended) / float64(marked)
}

func dashboardKey(p auth.Principal, input DashboardInput) string {
	parts := []string{"dashboard"}
	if p.IsAdmin() {
		parts = append(parts, "all")
	} else {
		parts = append(parts, p.UserID.String())
	}
	folder := "-"
	if input.FolderID != nil {
		folder = input.FolderID.String()
	}
	parts = append(parts, folder, dateKey(input.From), dateKey(input.To))
	return strings.Join(parts, ":")
}

func dateKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("20060102")
}
