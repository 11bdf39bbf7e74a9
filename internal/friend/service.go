package friend

import (
	"context"
	"errors"
)

var (
	ErrSelfFriend    = errors.New("cannot add yourself as a friend")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotTarget     = errors.New("only the request's target may respond")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	exists, err := s.repo.EdgeExists(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFriends
	}

	return s.repo.CreateEdge(ctx, userID, friendID)
}

func (s *Service) Requests(ctx context.Context, userID int) ([]Request, error) {
	return s.repo.IncomingRequests(ctx, userID)
}

// Respond accepts or rejects a pending request. The caller must be the
// edge's target.
func (s *Service) Respond(ctx context.Context, userID, edgeID int, status string) error {
	if status != StatusAccepted && status != StatusRejected {
		return ErrInvalidStatus
	}

	edge, err := s.repo.GetEdge(ctx, edgeID)
	if err != nil {
		return err
	}
	if edge.FriendID != userID {
		return ErrNotTarget
	}

	return s.repo.UpdateStatus(ctx, edgeID, status)
}

func (s *Service) List(ctx context.Context, userID int) ([]Profile, error) {
	return s.repo.ListFriends(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, friendID int) error {
	return s.repo.RemoveFriend(ctx, userID, friendID)
}
