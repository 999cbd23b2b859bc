package meeting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

func TestFolders_Sharing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)

	_, err := f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.owner.UserID})
	assert.ErrorIs(t, err, ucerrors.ErrCannotShareWithOwner)

	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.viewer.UserID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderMemberExists)

	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, ucerrors.ErrUserNotFound)

	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.editor, FolderID: folder.ID, UserID: f.stranger.UserID})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)

	_, err = f.svc.AddFolderMember(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.stranger.UserID, Role: "owner"})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)

	promoted, err := f.svc.UpdateFolderMemberRole(ctx, FolderMemberInput{Principal: f.owner, FolderID: folder.ID, UserID: f.viewer.UserID, Role: entities.FolderRoleEditor})
	require.NoError(t, err)
	assert.Equal(t, entities.FolderRoleEditor, promoted.Role)

	got, err := f.svc.GetFolder(ctx, f.viewer, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.FolderAccessEditor, got.AccessFor(f.viewer.UserID, false))

	require.NoError(t, f.svc.RemoveFolderMember(ctx, f.owner, folder.ID, f.viewer.UserID))
	assert.ErrorIs(t, f.svc.RemoveFolderMember(ctx, f.owner, folder.ID, f.viewer.UserID), ucerrors.ErrFolderMemberNotFound)

	_, err = f.svc.GetFolder(ctx, f.viewer, folder.ID)
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)
}

func TestFolders_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sharedFolder(t)
	_, err := f.svc.CreateFolder(ctx, CreateFolderInput{Principal: f.stranger, Name: "Mine"})
	require.NoError(t, err)

	mine, err := f.svc.ListFolders(ctx, f.editor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Board", mine[0].Name)

	all, err := f.svc.ListFolders(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.CreateFolder(ctx, CreateFolderInput{Principal: f.owner, Name: "  "})
	assert.ErrorIs(t, err, ucerrors.ErrInvalidInput)
}

func TestFolders_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.sharedFolder(t)
	m := f.meeting(t, f.owner, &folder.ID, day(1))

	name := "Board of directors"
	_, err := f.svc.UpdateFolder(ctx, UpdateFolderInput{Principal: f.editor, FolderID: folder.ID, Name: &name})
	assert.ErrorIs(t, err, ucerrors.ErrFolderAccessDenied)

	renamed, err := f.svc.UpdateFolder(ctx, UpdateFolderInput{Principal: f.owner, FolderID: folder.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, renamed.Name)

	assert.ErrorIs(t, f.svc.DeleteFolder(ctx, f.owner, folder.ID, false), ucerrors.ErrFolderNotEmpty)
	require.NoError(t, f.svc.DeleteFolder(ctx, f.owner, folder.ID, true))

	// the meeting survives outside any folder
	kept, err := f.svc.GetMeeting(ctx, f.owner, m.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.FolderID)

	assert.ErrorIs(t, f.svc.DeleteFolder(ctx, f.owner, folder.ID, false), ucerrors.ErrFolderNotFound)
}
