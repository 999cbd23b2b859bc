package meeting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db        *memDB
	svc       *MeetingService
	publisher *recordingPublisher
	store     *cache.MemoryStore

	admin, owner, editor, viewer, member, stranger auth.Principal
}

func principal(name string, role entities.UserRole) auth.Principal {
	return auth.Principal{UserID: uuid.New(), Email: name + "@example.com", FullName: name, Role: role}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	f := &fixture{
		db:        db,
		publisher: &recordingPublisher{},
		store:     cache.NewMemoryStore(),
		admin:     principal("Admin", entities.RoleAdmin),
		owner:     principal("Mona", entities.RoleMember),
		editor:    principal("Sami", entities.RoleMember),
		viewer:    principal("Lina", entities.RoleMember),
		member:    principal("Omar", entities.RoleMember),
		stranger:  principal("Rami", entities.RoleMember),
	}
	t.Cleanup(f.store.Close)

	for _, p := range []auth.Principal{f.admin, f.owner, f.editor, f.viewer, f.member, f.stranger} {
		db.users[p.UserID] = *p.User()
	}

	f.svc = NewMeetingService(
		fakeMeetings{db}, fakeParticipants{db}, fakeAgenda{db}, fakeMinutes{db}, fakeTasks{db}, fakeFolders{db}, fakeUsers{db: db},
		f.publisher, zap.NewNop(),
		WithDashboardCache(f.store, time.Minute),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

// sharedFolder creates a folder owned by owner with editor and viewer members
func (f *fixture) sharedFolder(t *testing.T) *entities.MeetingFolder {
	t.Helper()
	ctx := context.Background()
	folder, err := f.svc.CreateFolder(ctx, CreateFolderInput{Principal: f.owner, Name: "Board"})
	require.NoError(t, err)
	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.editor.UserID, Role: entities.FolderRoleEditor})
	require.NoError(t, err)
	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.viewer.UserID})
	require.NoError(t, err)
	return folder
}

func (f *fixture) meeting(t *testing.T, by auth.Principal, folderID *uuid.UUID, date time.Time) *entities.Meeting {
	t.Helper()
	m, err := f.svc.CreateMeeting(context.Background(), CreateMeetingInput{
		Principal: by,
		Title:     "Weekly sync",
		Date:      date,
		StartTime: "09:30",
		FolderID:  folderID,
	})
	require.NoError(t, err)
	return m
}

func day(offset int) time.Time {
	return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestCreateMeeting_Defaults(t *testing.T) {
	f := newFixture(t)

	m := f.meeting(t, f.owner, nil, day(1))
	assert.Equal(t, entities.MeetingTypeRegular, m.MeetingType)
	assert.Equal(t, entities.AttendanceInPerson, m.AttendanceType)
	assert.Equal(t, 60, m.DurationMinutes)
	assert.Equal(t, entities.MeetingStatusScheduled, m.Status)
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, []events.Type{events.MeetingCreated}, f.publisher.types())
}

func TestCreateMeeting_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateMeeting(ctx, CreateMeetingInput{Principal: f.owner, Title: " ", Date: day(1), StartTime: "09:00"})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	_, err = f.svc.CreateMeeting(ctx, CreateMeetingInput{Principal: f.owner, Title: "x", Date: day(1), StartTime: "9am"})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	_, err = f.svc.CreateMeeting(ctx, CreateMeetingInput{Principal: f.owner, Title: "x", Date: day(1), StartTime: "09:00", MeetingType: "party"})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	folder := f.sharedFolder(t)
	_, err = f.svc.CreateMeeting(ctx, CreateMeetingInput{Principal: f.viewer, Title: "x", Date: day(1), StartTime: "09:00", FolderID: &folder.ID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)

	missing := uuid.New()
	_, err = f.svc.CreateMeeting(ctx, CreateMeetingInput{Principal: f.owner, Title: "x", Date: day(1), StartTime: "09:00", FolderID: &missing})
	assert.ErrorIs(t, err, ucerrors.ErrFolderNotFound)
}

func TestMeetingAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)

	inFolder := f.meeting(t, f.owner, &folder.ID, day(1))
	private := f.meeting(t, f.owner, nil, day(2))
	_, err := f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: private.ID, UserID: &f.member.UserID})
	require.NoError(t, err)

	tests := []struct {
		name    string
		who     auth.Principal
		meeting *entities.Meeting
		read    bool
		write   bool
	}{
		{"owner", f.owner, private, true, true},
		{"admin", f.admin, private, true, true},
		{"participant reads", f.member, private, true, false},
		{"stranger", f.stranger, private, false, false},
		{"folder editor", f.editor, inFolder, true, true},
		{"folder viewer", f.viewer, inFolder, true, false},
		{"folder member outside the folder", f.editor, private, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.svc.CanView(ctx, tt.who, tt.meeting.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.read, ok)

			title := "Renamed by " + tt.name
			_, err = f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: tt.who, MeetingID: tt.meeting.ID, Title: &title})
			if tt.write {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ucerrors.ErrMeetingAccessDenied)
			}
		})
	}

	ok, err := f.svc.CanView(ctx, f.owner, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListMeetings_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)

	f.meeting(t, f.owner, &folder.ID, day(1))
	f.meeting(t, f.owner, nil, day(2))
	f.meeting(t, f.stranger, nil, day(3))

	_, total, err := f.svc.ListMeetings(ctx, f.admin, repositories.MeetingFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	list, total, err := f.svc.ListMeetings(ctx, f.viewer, repositories.MeetingFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, &folder.ID, list[0].FolderID)

	_, _, err = f.svc.ListMeetings(ctx, f.stranger, repositories.MeetingFilters{FolderID: &folder.ID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)
}

func TestUpdateMeeting_VersionAndFolderMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)
	m := f.meeting(t, f.editor, nil, day(1))

	title := "Moved"
	_, err := f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: f.editor, MeetingID: m.ID, Version: 7, Title: &title})
	assert.ErrorIs(t, err, ucerrors.ErrVersionChanged)

	updated, err := f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: f.editor, MeetingID: m.ID, Version: 1, Title: &title, FolderID: &folder.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, folder.ID, *updated.FolderID)

	other, err := f.svc.CreateFolder(ctx, CreateFolderInput{Principal: f.stranger, Name: "Private"})
	require.NoError(t, err)
	_, err = f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: f.editor, MeetingID: m.ID, FolderID: &other.ID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)

	removed, err := f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: f.editor, MeetingID: m.ID, RemoveFromFolder: true})
	require.NoError(t, err)
	assert.Nil(t, removed.FolderID)

	bad := "25:00"
	_, err = f.svc.UpdateMeeting(ctx, UpdateMeetingInput{Principal: f.editor, MeetingID: m.ID, StartTime: &bad})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)
}

func TestUpdateMeetingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))

	_, err := f.svc.UpdateMeetingStatus(ctx, f.owner, m.ID, "archived", 0)
	assert.ErrorIs(t, err, ucerrors.ErrInvalidMeetingStatus)

	_, err = f.svc.UpdateMeetingStatus(ctx, f.owner, m.ID, entities.MeetingStatusCompleted, 3)
	assert.ErrorIs(t, err, ucerrors.ErrVersionChanged)

	done, err := f.svc.UpdateMeetingStatus(ctx, f.owner, m.ID, entities.MeetingStatusCompleted, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusCompleted, done.Status)
	assert.Equal(t, 2, done.Version)
}

func TestDeleteMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)
	m := f.meeting(t, f.owner, &folder.ID, day(1))

	assert.ErrorIs(t, f.svc.DeleteMeeting(ctx, f.editor, m.ID), ucerrors.ErrMeetingAccessDenied)
	require.NoError(t, f.svc.DeleteMeeting(ctx, f.owner, m.ID))

	_, err := f.svc.GetMeeting(ctx, f.owner, m.ID)
	assert.ErrorIs(t, err, ucerrors.ErrMeetingNotFound)
	assert.Contains(t, f.publisher.types(), events.MeetingDeleted)
}

// staleChairs answers the first chairman lookup as if a concurrent
// assignment had not committed yet
type staleChairs struct {
	fakeParticipants
	misses int
}

func (s *staleChairs) FindByRole(ctx context.Context, meetingID uuid.UUID, role entities.ParticipantRole) ([]*entities.MeetingParticipant, error) {
	if s.misses > 0 {
		s.misses--
		return nil, nil
	}
	return s.fakeParticipants.FindByRole(ctx, meetingID, role)
}

func TestConcurrentChairmanAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))

	chairs := &staleChairs{fakeParticipants: fakeParticipants{f.db}}
	svc := NewMeetingService(
		fakeMeetings{f.db}, chairs, fakeAgenda{f.db}, fakeMinutes{f.db}, fakeTasks{f.db}, fakeFolders{f.db}, fakeUsers{db: f.db},
		f.publisher, zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
	)

	first, err := svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, Name: "First chair", Role: entities.ParticipantRoleChairman})
	require.NoError(t, err)

	t.Run("add loses the race", func(t *testing.T) {
		chairs.misses = 1
		_, err := svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, Name: "Second chair", Role: entities.ParticipantRoleChairman})
		assert.ErrorIs(t, err, ucerrors.ErrChairmanAlreadyAssigned)
	})

	t.Run("role change loses the race", func(t *testing.T) {
		guest, err := svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, Name: "Visitor", Role: entities.ParticipantRoleGuest})
		require.NoError(t, err)

		chairs.misses = 1
		_, err = svc.UpdateParticipantRole(ctx, f.owner, guest.ID, entities.ParticipantRoleChairman)
		assert.ErrorIs(t, err, ucerrors.ErrChairmanAlreadyAssigned)

		stored, err := chairs.FindByID(ctx, guest.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ParticipantRoleGuest, stored.Role)
	})

	held, err := chairs.FindByRole(ctx, m.ID, entities.ParticipantRoleChairman)
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, first.ID, held[0].ID)
}

func TestParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))

	p, err := f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &f.member.UserID, Role: entities.ParticipantRoleChairman})
	require.NoError(t, err)
	assert.Equal(t, "Omar", p.Name)
	assert.Equal(t, "Omar@example.com", *p.Email)
	assert.Equal(t, entities.AttendancePending, p.AttendanceStatus)

	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &f.member.UserID})
	assert.ErrorIs(t, err, ucerrors.ErrParticipantAlreadyExists)

	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, Name: "Guest chair", Role: entities.ParticipantRoleChairman})
	assert.ErrorIs(t, err, ucerrors.ErrChairmanAlreadyAssigned)

	guest, err := f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, Name: "Visitor", Role: entities.ParticipantRoleGuest})
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)

	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	missing := uuid.New()
	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &missing})
	assert.ErrorIs(t, err, ucerrors.ErrUserNotFound)

	_, err = f.svc.UpdateParticipantRole(ctx, f.owner, guest.ID, entities.ParticipantRoleChairman)
	assert.ErrorIs(t, err, ucerrors.ErrChairmanAlreadyAssigned)

	// the chairman keeping the role is not a conflict with itself
	same, err := f.svc.UpdateParticipantRole(ctx, f.owner, p.ID, entities.ParticipantRoleChairman)
	require.NoError(t, err)
	assert.Equal(t, entities.ParticipantRoleChairman, same.Role)

	// participants mark their own attendance but nobody else's
	marked, err := f.svc.UpdateAttendance(ctx, f.member, p.ID, entities.AttendanceConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entities.AttendanceConfirmed, marked.AttendanceStatus)
	_, err = f.svc.UpdateAttendance(ctx, f.member, guest.ID, entities.AttendanceAbsent)
	assert.ErrorIs(t, err, ucerrors.ErrMeetingAccessDenied)
	_, err = f.svc.UpdateAttendance(ctx, f.owner, guest.ID, "late")
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	list, err := f.svc.ListParticipants(ctx, f.member, m.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, f.svc.RemoveParticipant(ctx, f.member, guest.ID), ucerrors.ErrMeetingAccessDenied)
	require.NoError(t, f.svc.RemoveParticipant(ctx, f.owner, guest.ID))
	assert.ErrorIs(t, f.svc.RemoveParticipant(ctx, f.owner, guest.ID), ucerrors.ErrParticipantNotFound)
	assert.Contains(t, f.publisher.types(), events.ParticipantsChanged)
}

func TestAgenda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))

	var ids []uuid.UUID
	for _, title := range []string{"Budget", "Hiring", "AOB"} {
		item, err := f.svc.AddAgendaItem(ctx, AgendaItemInput{Principal: f.owner, MeetingID: m.ID, Title: title})
		require.NoError(t, err)
		assert.Equal(t, len(ids), item.Position)
		ids = append(ids, item.ID)
	}

	_, err := f.svc.ReorderAgenda(ctx, f.owner, m.ID, []uuid.UUID{ids[2], ids[0]})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidAgendaOrder)
	_, err = f.svc.ReorderAgenda(ctx, f.owner, m.ID, []uuid.UUID{ids[2], ids[0], ids[0]})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidAgendaOrder)

	items, err := f.svc.ReorderAgenda(ctx, f.owner, m.ID, []uuid.UUID{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "AOB", items[0].Title)
	assert.Equal(t, "Hiring", items[2].Title)

	minutes := 15
	updated, err := f.svc.UpdateAgendaItem(ctx, UpdateAgendaItemInput{Principal: f.owner, ItemID: ids[0], DurationMinutes: &minutes})
	require.NoError(t, err)
	assert.Equal(t, 15, *updated.DurationMinutes)

	require.NoError(t, f.svc.DeleteAgendaItem(ctx, f.owner, ids[1]))
	items, err = f.svc.ListAgenda(ctx, f.owner, m.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, f.svc.DeleteAgendaItem(ctx, f.owner, ids[1]), ucerrors.ErrAgendaItemNotFound)
}

func TestMinutes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))

	_, err := f.svc.GetMinutes(ctx, f.owner, m.ID)
	assert.ErrorIs(t, err, ucerrors.ErrMinutesNotFound)

	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &f.member.UserID, Role: entities.ParticipantRoleSecretary})
	require.NoError(t, err)
	_, err = f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &f.viewer.UserID, Role: entities.ParticipantRoleObserver})
	require.NoError(t, err)

	_, err = f.svc.UpsertMinutes(ctx, MinutesInput{Principal: f.viewer, MeetingID: m.ID, Content: "notes"})
	assert.ErrorIs(t, err, ucerrors.ErrMeetingAccessDenied)

	first, err := f.svc.UpsertMinutes(ctx, MinutesInput{Principal: f.member, MeetingID: m.ID, Content: "draft notes"})
	require.NoError(t, err)

	second, err := f.svc.UpsertMinutes(ctx, MinutesInput{Principal: f.owner, MeetingID: m.ID, Content: "final notes"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := f.svc.GetMinutes(ctx, f.viewer, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "final notes", got.Content)
	assert.Equal(t, f.owner.UserID, got.RecordedBy)
}

func TestTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.meeting(t, f.owner, nil, day(1))
	_, err := f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: m.ID, UserID: &f.member.UserID})
	require.NoError(t, err)

	task, err := f.svc.CreateTask(ctx, CreateTaskInput{
		Principal:   f.owner,
		MeetingID:   m.ID,
		Title:       "Send the report",
		AssignedTo:  &f.member.UserID,
		LinkGeneral: true,
	})
	require.NoError(t, err)
	require.NotNil(t, task.GeneralTaskID)
	assert.Equal(t, entities.TaskTypeActionItem, task.TaskType)

	// assignees update the status without write access and it reaches the general task
	done, err := f.svc.UpdateTaskStatus(ctx, f.member, task.ID, entities.TaskStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusCompleted, done.Status)
	assert.Equal(t, entities.TaskStatusCompleted, f.db.general[*task.GeneralTaskID].Status)

	_, err = f.svc.UpdateTask(ctx, UpdateTaskInput{Principal: f.member, TaskID: task.ID, Title: &task.Title})
	assert.ErrorIs(t, err, ucerrors.ErrMeetingAccessDenied)

	ghost := uuid.New()
	_, err = f.svc.UpdateTask(ctx, UpdateTaskInput{Principal: f.owner, TaskID: task.ID, AssignedTo: &ghost})
	assert.ErrorIs(t, err, ucerrors.ErrUserNotFound)

	general, total, err := f.svc.ListGeneralTasks(ctx, repositories.TaskFilters{AssignedTo: &f.member.UserID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Send the report", general[0].Title)

	require.NoError(t, f.svc.DeleteTask(ctx, f.owner, task.ID))
	_, err = f.svc.UpdateTaskStatus(ctx, f.owner, task.ID, entities.TaskStatusPending)
	assert.ErrorIs(t, err, ucerrors.ErrTaskNotFound)

	// the general task outlives the meeting task
	_, ok := f.db.general[*task.GeneralTaskID]
	assert.True(t, ok)
}
