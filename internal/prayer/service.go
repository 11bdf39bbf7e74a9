package prayer

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int, req SaveRequest) (int, error) {
	return s.repo.Create(ctx, userID, req.Title, req.Content, *req.IsPrivate, *req.Verses)
}

func (s *Service) ListVisible(ctx context.Context, userID int) ([]Prayer, error) {
	return s.repo.ListVisible(ctx, userID)
}

func (s *Service) ListMine(ctx context.Context, userID int) ([]Prayer, error) {
	return s.repo.ListMine(ctx, userID)
}

func (s *Service) ListPublic(ctx context.Context) ([]Prayer, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) ListByAuthor(ctx context.Context, authorID int) ([]Prayer, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *Service) Update(ctx context.Context, prayerID, userID int, req SaveRequest) error {
	return s.repo.Update(ctx, prayerID, userID, req.Title, req.Content, *req.IsPrivate, *req.Verses)
}

func (s *Service) Delete(ctx context.Context, prayerID, userID int) error {
	return s.repo.Delete(ctx, prayerID, userID)
}

func (s *Service) Like(ctx context.Context, prayerID, userID int) error {
	return s.repo.Like(ctx, prayerID, userID)
}

func (s *Service) Unlike(ctx context.Context, prayerID, userID int) error {
	return s.repo.Unlike(ctx, prayerID, userID)
}

func (s *Service) LikeCount(ctx context.Context, prayerID int) (int, error) {
	return s.repo.LikeCount(ctx, prayerID)
}

func (s *Service) IsLiked(ctx context.Context, prayerID, userID int) (bool, error) {
	return s.repo.IsLiked(ctx, prayerID, userID)
}

func (s *Service) AddComment(ctx context.Context, prayerID, userID int, content string) error {
	return s.repo.CreateComment(ctx, prayerID, userID, content)
}

func (s *Service) ListComments(ctx context.Context, prayerID int) ([]Comment, error) {
	return s.repo.ListComments(ctx, prayerID)
}

// EditComment is restricted to the comment's author.
func (s *Service) EditComment(ctx context.Context, prayerID, commentID, userID int, content string) error {
	comment, err := s.repo.GetComment(ctx, prayerID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.UpdateComment(ctx, commentID, content)
}

// canDeleteComment is the two-tier rule shared by the delete action and the
// candelete probe: the comment's author first, the prayer's author second.
func (s *Service) canDeleteComment(ctx context.Context, comment *Comment, prayerID, userID int) (bool, error) {
	if comment.UserID == userID {
		return true, nil
	}

	ownerID, err := s.repo.GetOwner(ctx, prayerID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}

func (s *Service) DeleteComment(ctx context.Context, prayerID, commentID, userID int) error {
	comment, err := s.repo.GetComment(ctx, prayerID, commentID)
	if err != nil {
		return err
	}

	ok, err := s.canDeleteComment(ctx, comment, prayerID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}

	return s.repo.DeleteComment(ctx, commentID)
}

// CanDeleteComment exposes the deletion decision without performing it, so
// the client can gate its UI on the same rule the API enforces.
func (s *Service) CanDeleteComment(ctx context.Context, prayerID, commentID, userID int) (bool, error) {
	comment, err := s.repo.GetComment(ctx, prayerID, commentID)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return false, nil
		}
		return false, err
	}

	ok, err := s.canDeleteComment(ctx, comment, prayerID, userID)
	if err != nil {
		if errors.Is(err, ErrPrayerNotFound) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
