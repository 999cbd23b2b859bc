package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDisplay_TotalOverKnownStatuses(t *testing.T) {
	for _, s := range IdeaStatuses {
		for _, loc := range []Locale{LocaleArabic, LocaleEnglish} {
			label := StatusDisplay(s, loc)
			assert.NotEmpty(t, label, "status %s locale %s", s, loc)
			assert.NotEqual(t, unknownLabel[loc], label)
		}
		assert.NotEqual(t, "status-badge status-unknown", StatusClass(s))
	}
}

func TestStatusDisplay_Unknown(t *testing.T) {
	assert.Equal(t, "غير معروف", StatusDisplay("archived", LocaleArabic))
	assert.Equal(t, "Unknown", StatusDisplay("archived", LocaleEnglish))
	assert.Equal(t, "Unknown", StatusDisplay("", LocaleEnglish))
	assert.Equal(t, "status-badge status-unknown", StatusClass("archived"))
	assert.Equal(t, "status-badge status-unknown", StatusClass(""))
}

func TestStatusDisplay_DefaultsToArabic(t *testing.T) {
	assert.Equal(t, "مسودة", StatusDisplay(IdeaStatusDraft, ""))
	assert.Equal(t, "مسودة", StatusDisplay(IdeaStatusDraft, "fr"))
	assert.Equal(t, "Draft", StatusDisplay(IdeaStatusDraft, "en-GB"))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "status-badge status-under-review", StatusClass(IdeaStatusUnderReview))
	assert.Equal(t, "status-badge status-needs-modification", StatusClass(IdeaStatusNeedsModification))
}

func TestOtherLabelTables(t *testing.T) {
	assert.Equal(t, "Chairman", RoleDisplay(ParticipantRoleChairman, LocaleEnglish))
	assert.Equal(t, "Unknown", RoleDisplay("king", LocaleEnglish))
	assert.Equal(t, "حضر", AttendanceDisplay(AttendanceAttended, LocaleArabic))
	assert.Equal(t, "Postponed", MeetingStatusDisplay(MeetingStatusPostponed, LocaleEnglish))
	assert.Equal(t, "Workshop", MeetingTypeDisplay(MeetingTypeWorkshop, LocaleEnglish))
	assert.Equal(t, "In progress", TaskStatusDisplay(TaskStatusInProgress, LocaleEnglish))
	assert.Equal(t, "محايد", VoteDisplay(VoteNeutral, LocaleArabic))
	assert.Equal(t, "Hybrid", AttendanceTypeDisplay(AttendanceHybrid, LocaleEnglish))
	assert.Equal(t, "Follow-up", TaskTypeDisplay(TaskTypeFollowUp, LocaleEnglish))
	assert.Equal(t, "محرر", FolderRoleDisplay(FolderRoleEditor, LocaleArabic))
}

func TestLabelTables(t *testing.T) {
	tables := LabelTables(LocaleEnglish)

	assert.Equal(t, "Approved", tables["idea_status"]["approved"])
	assert.Equal(t, "Unknown", tables["idea_status"]["unknown"])
	assert.Len(t, tables["idea_status"], len(IdeaStatuses)+1)
	assert.Contains(t, tables, "vote")
	assert.Contains(t, tables, "folder_role")
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEnglish, ParseLocale(" EN "))
	assert.Equal(t, LocaleArabic, ParseLocale("ar_SA"))
	assert.Equal(t, DefaultLocale, ParseLocale("de"))
}
