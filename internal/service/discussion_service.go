package service

import (
	"context"
	"errors"

	"lesoblog/internal/models"
	"lesoblog/internal/repository"
)

type AddCommentRequest struct {
	DiscussionName string `json:"discussionName"`
	UserID         string `json:"userId"`
	Body           string `json:"body"`
}

type DiscussionService interface {
	CreateDiscussion(ctx context.Context, name string) (*models.Discussion, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error)
	Comments(ctx context.Context, discussionName string) ([]models.Comment, error)
	VoteComment(ctx context.Context, commentID string, like bool) error
}

type discussionService struct {
	discussionRepo repository.DiscussionRepository
}

func NewDiscussionService(discussionRepo repository.DiscussionRepository) DiscussionService {
	return &discussionService{discussionRepo: discussionRepo}
}

func (s *discussionService) CreateDiscussion(ctx context.Context, name string) (*models.Discussion, error) {
	discussion := &models.Discussion{Name: name}

	err := s.discussionRepo.CreateDiscussion(ctx, discussion)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, newValidationError("name", "название обсуждения уже занято")
		}
		return nil, err
	}

	return discussion, nil
}

func (s *discussionService) AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error) {
	discussion, err := s.discussionRepo.GetDiscussionByName(ctx, req.DiscussionName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		DiscussionID: discussion.DiscussionID,
		UserID:       req.UserID,
		Body:         req.Body,
	}

	err = s.discussionRepo.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *discussionService) Comments(ctx context.Context, discussionName string) ([]models.Comment, error) {
	discussion, err := s.discussionRepo.GetDiscussionByName(ctx, discussionName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.discussionRepo.CommentsByDiscussionID(ctx, discussion.DiscussionID)
}

func (s *discussionService) VoteComment(ctx context.Context, commentID string, like bool) error {
	err := s.discussionRepo.VoteComment(ctx, commentID, like)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
