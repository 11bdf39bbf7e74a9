package prayer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo backs service tests with canned data, no database.
type stubRepo struct {
	Repository

	comment        *Comment
	commentErr     error
	owner          int
	ownerErr       error
	updatedContent string
	deletedComment int
}

func (s *stubRepo) GetComment(ctx context.Context, prayerID, commentID int) (*Comment, error) {
	return s.comment, s.commentErr
}

func (s *stubRepo) GetOwner(ctx context.Context, prayerID int) (int, error) {
	return s.owner, s.ownerErr
}

func (s *stubRepo) UpdateComment(ctx context.Context, commentID int, content string) error {
	s.updatedContent = content
	return nil
}

func (s *stubRepo) DeleteComment(ctx context.Context, commentID int) error {
	s.deletedComment = commentID
	return nil
}

func TestEditComment_AuthorOnly(t *testing.T) {
	repo := &stubRepo{comment: &Comment{ID: 3, PrayerID: 42, UserID: 7}}
	svc := NewService(repo)

	err := svc.EditComment(context.Background(), 42, 3, 7, "updated")
	require.NoError(t, err)
	assert.Equal(t, "updated", repo.updatedContent)

	err = svc.EditComment(context.Background(), 42, 3, 8, "hijack")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestEditComment_MissingComment(t *testing.T) {
	repo := &stubRepo{commentErr: ErrCommentNotFound}
	svc := NewService(repo)

	err := svc.EditComment(context.Background(), 42, 3, 7, "updated")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_AuthorCanDelete(t *testing.T) {
	repo := &stubRepo{comment: &Comment{ID: 3, PrayerID: 42, UserID: 7}}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteComment(context.Background(), 42, 3, 7))
	assert.Equal(t, 3, repo.deletedComment)
}

func TestDeleteComment_PrayerOwnerCanDeleteAnyComment(t *testing.T) {
	repo := &stubRepo{comment: &Comment{ID: 3, PrayerID: 42, UserID: 7}, owner: 11}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteComment(context.Background(), 42, 3, 11))
	assert.Equal(t, 3, repo.deletedComment)
}

func TestDeleteComment_StrangerForbidden(t *testing.T) {
	repo := &stubRepo{comment: &Comment{ID: 3, PrayerID: 42, UserID: 7}, owner: 11}
	svc := NewService(repo)

	err := svc.DeleteComment(context.Background(), 42, 3, 99)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Zero(t, repo.deletedComment)
}

func TestCanDeleteComment_MatchesDeleteDecision(t *testing.T) {
	repo := &stubRepo{comment: &Comment{ID: 3, PrayerID: 42, UserID: 7}, owner: 11}
	svc := NewService(repo)

	for caller, want := range map[int]bool{7: true, 11: true, 99: false} {
		got, err := svc.CanDeleteComment(context.Background(), 42, 3, caller)
		require.NoError(t, err)
		assert.Equal(t, want, got, "caller %d", caller)
	}
}

func TestCanDeleteComment_MissingCommentIsFalseNotError(t *testing.T) {
	repo := &stubRepo{commentErr: ErrCommentNotFound}
	svc := NewService(repo)

	got, err := svc.CanDeleteComment(context.Background(), 42, 3, 7)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSaveRequestValid(t *testing.T) {
	priv := false
	verses := []VerseRef{}

	assert.True(t, SaveRequest{Title: "t", Content: "c", IsPrivate: &priv, Verses: &verses}.Valid())
	assert.False(t, SaveRequest{Content: "c", IsPrivate: &priv, Verses: &verses}.Valid())
	assert.False(t, SaveRequest{Title: "t", IsPrivate: &priv, Verses: &verses}.Valid())
	assert.False(t, SaveRequest{Title: "t", Content: "c", Verses: &verses}.Valid())
	assert.False(t, SaveRequest{Title: "t", Content: "c", IsPrivate: &priv}.Valid())
}
