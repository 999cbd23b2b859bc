package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// groupedCount is the scan target of GROUP BY count queries
type groupedCount struct {
	Label string
	Total int64
}

// applyMeetingFilters narrows a query on meetings without pagination or ordering.
// A user sees a meeting they created, take part in, or whose folder they can read.
func applyMeetingFilters(query *gorm.DB, filters repositories.MeetingFilters) *gorm.DB {
	if filters.VisibleTo != nil {
		uid := *filters.VisibleTo
		query = query.Where(`(meetings.created_by = ?
			OR meetings.id IN (SELECT meeting_id FROM meeting_participants WHERE user_id = ?)
			OR meetings.folder_id IN (SELECT id FROM meeting_folders WHERE owner_id = ?)
			OR meetings.folder_id IN (SELECT folder_id FROM meeting_folder_members WHERE user_id = ?))`,
			uid, uid, uid, uid)
	}
	if filters.FolderID != nil {
		query = query.Where("meetings.folder_id = ?", *filters.FolderID)
	}
	if filters.Status != nil {
		query = query.Where("meetings.meeting_status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("meetings.meeting_type = ?", *filters.Type)
	}
	if filters.From != nil {
		query = query.Where("meetings.date >= ?", filters.From.Format(dateLayout))
	}
	if filters.To != nil {
		query = query.Where("meetings.date <= ?", filters.To.Format(dateLayout))
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("(meetings.title ILIKE ? OR meetings.description ILIKE ? OR meetings.location ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

// meetingIDs is a subquery selecting the ids of meetings matching filters
func meetingIDs(db *gorm.DB, filters repositories.MeetingFilters) *gorm.DB {
	return applyMeetingFilters(db.Model(&entities.Meeting{}).Select("meetings.id"), filters)
}

func toCountMap(rows []groupedCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out
}
