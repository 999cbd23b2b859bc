package meeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tomorrow := f.meeting(t, f.owner, nil, day(1))
	f.meeting(t, f.owner, nil, day(10))
	past := f.meeting(t, f.owner, nil, day(-3))
	_, err := f.svc.UpdateMeetingStatus(ctx, f.owner, past.ID, entities.MeetingStatusCompleted, 0)
	require.NoError(t, err)
	f.meeting(t, f.stranger, nil, day(2))

	for _, status := range []entities.AttendanceStatus{entities.AttendanceAttended, entities.AttendanceAttended, entities.AttendanceAbsent, entities.AttendancePending} {
		p, err := f.svc.AddParticipant(ctx, AddParticipantInput{Principal: f.owner, MeetingID: past.ID, Name: "Guest"})
		require.NoError(t, err)
		_, err = f.svc.UpdateAttendance(ctx, f.owner, p.ID, status)
		require.NoError(t, err)
	}

	due := day(-1)
	_, err = f.svc.CreateTask(ctx, CreateTaskInput{Principal: f.owner, MeetingID: past.ID, Title: "late", DueDate: &due})
	require.NoError(t, err)
	later := day(5)
	_, err = f.svc.CreateTask(ctx, CreateTaskInput{Principal: f.owner, MeetingID: past.ID, Title: "on time", DueDate: &later})
	require.NoError(t, err)

	d, err := f.svc.GetDashboard(ctx, f.owner, DashboardInput{})
	require.NoError(t, err)

	assert.EqualValues(t, 3, d.TotalMeetings)
	assert.EqualValues(t, 2, d.ByStatus[string(entities.MeetingStatusScheduled)])
	assert.EqualValues(t, 1, d.ByStatus[string(entities.MeetingStatusCompleted)])
	assert.EqualValues(t, 3, d.ByType[string(entities.MeetingTypeRegular)])
	require.Len(t, d.Upcoming, 1)
	assert.Equal(t, tomorrow.ID, d.Upcoming[0].ID)
	assert.EqualValues(t, 2, d.TasksByStatus[string(entities.TaskStatusPending)])
	require.Len(t, d.OverdueTasks, 1)
	assert.Equal(t, "late", d.OverdueTasks[0].Title)
	assert.InDelta(t, 2.0/3.0, d.AttendanceRate, 1e-9)
	assert.Equal(t, fixedNow, d.GeneratedAt)

	admin, err := f.svc.GetDashboard(ctx, f.admin, DashboardInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, admin.TotalMeetings)
}

func TestDashboard_Cached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.meeting(t, f.owner, nil, day(1))

	first, err := f.svc.GetDashboard(ctx, f.owner, DashboardInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.TotalMeetings)

	f.meeting(t, f.owner, nil, day(2))

	second, err := f.svc.GetDashboard(ctx, f.owner, DashboardInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.TotalMeetings)

	fresh, err := f.svc.GetDashboard(ctx, f.admin, DashboardInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, fresh.TotalMeetings)
}

func TestDashboard_FolderAccess(t *testing.T) {
	f := newFixture(t)
	folder := f.sharedFolder(t)

	_, err := f.svc.GetDashboard(context.Background(), f.stranger, DashboardInput{FolderID: &folder.ID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)

	d, err := f.svc.GetDashboard(context.Background(), f.viewer, DashboardInput{FolderID: &folder.ID})
	require.NoError(t, err)
	assert.Zero(t, d.TotalMeetings)
}
