package entities

import "strings"

// Locale selects the language of display labels
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"
)

// DefaultLocale is the organisation's UI language
const DefaultLocale = LocaleArabic

// ParseLocale accepts "ar", "en" or a tag such as "en-US"; anything else yields the default
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Locale(s) {
	case LocaleArabic, LocaleEnglish:
		return Locale(s)
	}
	return DefaultLocale
}

type labels map[Locale]string

var unknownLabel = labels{LocaleArabic: "غير معروف", LocaleEnglish: "Unknown"}

var ideaStatusLabels = map[string]labels{
	string(IdeaStatusDraft):             {LocaleArabic: "مسودة", LocaleEnglish: "Draft"},
	string(IdeaStatusUnderReview):       {LocaleArabic: "قيد المراجعة", LocaleEnglish: "Under review"},
	string(IdeaStatusPendingDecision):   {LocaleArabic: "بانتظار القرار", LocaleEnglish: "Pending decision"},
	string(IdeaStatusApproved):          {LocaleArabic: "موافق عليها", LocaleEnglish: "Approved"},
	string(IdeaStatusRejected):          {LocaleArabic: "مرفوضة", LocaleEnglish: "Rejected"},
	string(IdeaStatusNeedsModification): {LocaleArabic: "تحتاج إلى تعديل", LocaleEnglish: "Needs modification"},
}

var meetingStatusLabels = map[string]labels{
	string(MeetingStatusScheduled):  {LocaleArabic: "مجدول", LocaleEnglish: "Scheduled"},
	string(MeetingStatusInProgress): {LocaleArabic: "جارٍ", LocaleEnglish: "In progress"},
	string(MeetingStatusCompleted):  {LocaleArabic: "مكتمل", LocaleEnglish: "Completed"},
	string(MeetingStatusCancelled):  {LocaleArabic: "ملغي", LocaleEnglish: "Cancelled"},
	string(MeetingStatusPostponed):  {LocaleArabic: "مؤجل", LocaleEnglish: "Postponed"},
}

var meetingTypeLabels = map[string]labels{
	string(MeetingTypeRegular):   {LocaleArabic: "اعتيادي", LocaleEnglish: "Regular"},
	string(MeetingTypePeriodic):  {LocaleArabic: "دوري", LocaleEnglish: "Periodic"},
	string(MeetingTypeEmergency): {LocaleArabic: "طارئ", LocaleEnglish: "Emergency"},
	string(MeetingTypeWorkshop):  {LocaleArabic: "ورشة عمل", LocaleEnglish: "Workshop"},
}

var attendanceTypeLabels = map[string]labels{
	string(AttendanceInPerson): {LocaleArabic: "حضوري", LocaleEnglish: "In person"},
	string(AttendanceOnline):   {LocaleArabic: "عن بعد", LocaleEnglish: "Online"},
	string(AttendanceHybrid):   {LocaleArabic: "مدمج", LocaleEnglish: "Hybrid"},
}

var roleLabels = map[string]labels{
	string(ParticipantRoleChairman):  {LocaleArabic: "رئيس الاجتماع", LocaleEnglish: "Chairman"},
	string(ParticipantRoleSecretary): {LocaleArabic: "أمين السر", LocaleEnglish: "Secretary"},
	string(ParticipantRoleMember):    {LocaleArabic: "عضو", LocaleEnglish: "Member"},
	string(ParticipantRoleObserver):  {LocaleArabic: "مراقب", LocaleEnglish: "Observer"},
	string(ParticipantRoleOrganizer): {LocaleArabic: "منظم", LocaleEnglish: "Organizer"},
	string(ParticipantRolePresenter): {LocaleArabic: "مقدم", LocaleEnglish: "Presenter"},
	string(ParticipantRoleGuest):     {LocaleArabic: "ضيف", LocaleEnglish: "Guest"},
}

var attendanceLabels = map[string]labels{
	string(AttendancePending):   {LocaleArabic: "بانتظار التأكيد", LocaleEnglish: "Pending"},
	string(AttendanceConfirmed): {LocaleArabic: "مؤكد", LocaleEnglish: "Confirmed"},
	string(AttendanceAttended):  {LocaleArabic: "حضر", LocaleEnglish: "Attended"},
	string(AttendanceAbsent):    {LocaleArabic: "غائب", LocaleEnglish: "Absent"},
}

var taskStatusLabels = map[string]labels{
	string(TaskStatusPending):    {LocaleArabic: "معلقة", LocaleEnglish: "Pending"},
	string(TaskStatusInProgress): {LocaleArabic: "قيد التنفيذ", LocaleEnglish: "In progress"},
	string(TaskStatusCompleted):  {LocaleArabic: "مكتملة", LocaleEnglish: "Completed"},
	string(TaskStatusCancelled):  {LocaleArabic: "ملغاة", LocaleEnglish: "Cancelled"},
}

var taskTypeLabels = map[string]labels{
	string(TaskTypeActionItem):             {LocaleArabic: "إجراء", LocaleEnglish: "Action item"},
	string(TaskTypeFollowUp):               {LocaleArabic: "متابعة", LocaleEnglish: "Follow-up"},
	string(TaskTypeDecisionImplementation): {LocaleArabic: "تنفيذ قرار", LocaleEnglish: "Decision implementation"},
}

var folderRoleLabels = map[string]labels{
	string(FolderRoleViewer): {LocaleArabic: "مشاهد", LocaleEnglish: "Viewer"},
	string(FolderRoleEditor): {LocaleArabic: "محرر", LocaleEnglish: "Editor"},
}

var voteLabels = map[string]labels{
	string(VoteAgree):    {LocaleArabic: "موافق", LocaleEnglish: "Agree"},
	string(VoteDisagree): {LocaleArabic: "غير موافق", LocaleEnglish: "Disagree"},
	string(VoteNeutral):  {LocaleArabic: "محايد", LocaleEnglish: "Neutral"},
}

func lookup(table map[string]labels, value string, locale Locale) string {
	locale = ParseLocale(string(locale))
	if l, ok := table[value]; ok {
		return l[locale]
	}
	return unknownLabel[locale]
}

// StatusDisplay returns the localized label of an idea status
func StatusDisplay(status IdeaStatus, locale Locale) string {
	return lookup(ideaStatusLabels, string(status), locale)
}

// StatusClass returns the badge CSS classes of an idea status
func StatusClass(status IdeaStatus) string {
	if _, ok := ideaStatusLabels[string(status)]; !ok {
		return "status-badge status-unknown"
	}
	return "status-badge status-" + strings.ReplaceAll(string(status), "_", "-")
}

// MeetingStatusDisplay returns the localized label of a meeting status
func MeetingStatusDisplay(status MeetingStatus, locale Locale) string {
	return lookup(meetingStatusLabels, string(status), locale)
}

// MeetingTypeDisplay returns the localized label of a meeting type
func MeetingTypeDisplay(t MeetingType, locale Locale) string {
	return lookup(meetingTypeLabels, string(t), locale)
}

// RoleDisplay returns the localized label of a participant role
func RoleDisplay(role ParticipantRole, locale Locale) string {
	return lookup(roleLabels, string(role), locale)
}

// AttendanceDisplay returns the localized label of an attendance status
func AttendanceDisplay(status AttendanceStatus, locale Locale) string {
	return lookup(attendanceLabels, string(status), locale)
}

// TaskStatusDisplay returns the localized label of a task status
func TaskStatusDisplay(status TaskStatus, locale Locale) string {
	return lookup(taskStatusLabels, string(status), locale)
}

// AttendanceTypeDisplay returns the localized label of where a meeting takes place
func AttendanceTypeDisplay(t AttendanceType, locale Locale) string {
	return lookup(attendanceTypeLabels, string(t), locale)
}

// TaskTypeDisplay returns the localized label of a task type
func TaskTypeDisplay(t TaskType, locale Locale) string {
	return lookup(taskTypeLabels, string(t), locale)
}

// FolderRoleDisplay returns the localized label of a folder role
func FolderRoleDisplay(r FolderRole, locale Locale) string {
	return lookup(folderRoleLabels, string(r), locale)
}

// VoteDisplay returns the localized label of a vote value
func VoteDisplay(v VoteValue, locale Locale) string {
	return lookup(voteLabels, string(v), locale)
}

// LabelTables flattens every table for locale, keyed by table name then value
func LabelTables(locale Locale) map[string]map[string]string {
	tables := map[string]map[string]labels{
		"idea_status":     ideaStatusLabels,
		"meeting_status":  meetingStatusLabels,
		"meeting_type":    meetingTypeLabels,
		"attendance_type": attendanceTypeLabels,
		"role":            roleLabels,
		"attendance":      attendanceLabels,
		"task_status":     taskStatusLabels,
		"task_type":       taskTypeLabels,
		"folder_role":     folderRoleLabels,
		"vote":            voteLabels,
	}

	locale = ParseLocale(string(locale))
	out := make(map[string]map[string]string, len(tables))
	for name, table := range tables {
		flat := make(map[string]string, len(table)+1)
		for value, l := range table {
			flat[value] = l[locale]
		}
		flat["unknown"] = unknownLabel[locale]
		out[name] = flat
	}
	return out
}
