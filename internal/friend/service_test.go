package friend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository

	exists  bool
	edge    *Edge
	edgeErr error

	createdEdge   [2]int
	updatedEdgeID int
	updatedStatus string
}

func (s *stubRepo) EdgeExists(ctx context.Context, userID, friendID int) (bool, error) {
	return s.exists, nil
}

func (s *stubRepo) CreateEdge(ctx context.Context, userID, friendID int) error {
	s.createdEdge = [2]int{userID, friendID}
	return nil
}

func (s *stubRepo) GetEdge(ctx context.Context, edgeID int) (*Edge, error) {
	return s.edge, s.edgeErr
}

func (s *stubRepo) UpdateStatus(ctx context.Context, edgeID int, status string) error {
	s.updatedEdgeID = edgeID
	s.updatedStatus = status
	return nil
}

func TestAdd_RejectsSelfFriending(t *testing.T) {
	svc := NewService(&stubRepo{})

	err := svc.Add(context.Background(), 7, 7)
	assert.ErrorIs(t, err, ErrSelfFriend)
}

func TestAdd_RejectsDuplicateOrderedPair(t *testing.T) {
	svc := NewService(&stubRepo{exists: true})

	err := svc.Add(context.Background(), 7, 8)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestAdd_CreatesPendingEdge(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.Add(context.Background(), 7, 8))
	assert.Equal(t, [2]int{7, 8}, repo.createdEdge)
}

func TestRespond_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(&stubRepo{})

	err := svc.Respond(context.Background(), 8, 1, "maybe")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRespond_OnlyTargetMayRespond(t *testing.T) {
	repo := &stubRepo{edge: &Edge{ID: 1, UserID: 7, FriendID: 8, Status: StatusPending}}
	svc := NewService(repo)

	// The requester cannot accept their own request.
	err := svc.Respond(context.Background(), 7, 1, StatusAccepted)
	assert.ErrorIs(t, err, ErrNotTarget)

	// Neither can an unrelated user.
	err = svc.Respond(context.Background(), 99, 1, StatusRejected)
	assert.ErrorIs(t, err, ErrNotTarget)
	assert.Empty(t, repo.updatedStatus)
}

func TestRespond_TargetAcceptsOrRejects(t *testing.T) {
	repo := &stubRepo{edge: &Edge{ID: 1, UserID: 7, FriendID: 8, Status: StatusPending}}
	svc := NewService(repo)

	require.NoError(t, svc.Respond(context.Background(), 8, 1, StatusAccepted))
	assert.Equal(t, 1, repo.updatedEdgeID)
	assert.Equal(t, StatusAccepted, repo.updatedStatus)
}

func TestRespond_MissingEdge(t *testing.T) {
	svc := NewService(&stubRepo{edgeErr: ErrRequestNotFound})

	err := svc.Respond(context.Background(), 8, 1, StatusRejected)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
