package service

import (
	"context"

	"buddyscript/internal/models"
	"buddyscript/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// LikePost records a like. A missing post is a 404; a repeated like from the
// same user is a conflict and leaves the ledger untouched.
func (s *LikeService) LikePost(ctx context.Context, userID, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", postID)
	}
	return s.likeRepo.LikePost(ctx, userID, postID)
}

func (s *LikeService) UnlikePost(ctx context.Context, userID, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", postID)
	}
	return s.likeRepo.UnlikePost(ctx, userID, postID)
}

func (s *LikeService) LikeComment(ctx context.Context, userID, commentID uint) error {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Comment", commentID)
	}
	return s.likeRepo.LikeComment(ctx, userID, commentID)
}

func (s *LikeService) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Comment", commentID)
	}
	return s.likeRepo.UnlikeComment(ctx, userID, commentID)
}
