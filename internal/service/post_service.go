// Package service contains the domain rules sitting between handlers and
// repositories. Services validate input, enforce ownership, and translate
// storage outcomes into AppErrors; they never touch fiber.
package service

import (
	"context"

	"buddyscript/internal/imagehost"
	"buddyscript/internal/middleware"
	"buddyscript/internal/models"
	"buddyscript/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	uploader imagehost.Uploader
}

// PostImageInput is one uploaded file as it arrived in the multipart form.
type PostImageInput struct {
	Content  []byte
	MimeType string
}

type CreatePostInput struct {
	UserID     uint
	Text       string
	Visibility string
	Images     []PostImageInput
}

type SetVisibilityInput struct {
	UserID     uint
	PostID     uint
	Visibility string
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	uploader imagehost.Uploader,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
		uploader: uploader,
	}
}

const maxPostTextLen = 10000

// CreatePost validates the draft, uploads each image to the external host,
// and persists the post with its media rows. Uploads are partial-success: a
// failed upload is logged and counted but neither fails the request nor
// blocks the remaining images.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Text == "" && len(in.Images) == 0 {
		return nil, models.NewValidationError("Post must have text or at least one image")
	}
	if len(in.Text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, models.NewValidationError("Visibility must be 'public' or 'private'")
	}

	type uploaded struct {
		url      string
		position int
		mimeType string
	}
	var media []uploaded
	for i, img := range in.Images {
		url, err := s.uploader.Upload(ctx, img.Content)
		if err != nil {
			middleware.ImageUploadFailures.Inc()
			middleware.Logger.WarnContext(ctx, "image upload failed, continuing without it",
				"position", i, "error", err)
			continue
		}
		media = append(media, uploaded{url: url, position: i, mimeType: img.MimeType})
	}

	// The post is created even when every upload failed; a draft that
	// passed edge validation always persists.
	post := &models.Post{
		UserID:     in.UserID,
		Text:       in.Text,
		Visibility: visibility,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	for _, m := range media {
		row := &models.PostMedia{
			PostID:   post.ID,
			URL:      m.url,
			Position: m.position,
			MimeType: m.mimeType,
		}
		if err := s.postRepo.CreateMedia(ctx, row); err != nil {
			return nil, err
		}
	}

	return s.loadPost(ctx, post.ID, in.UserID)
}

// ListFeed returns the posts visible to the viewer, newest first.
func (s *PostService) ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListFeed(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		markCommentLikes(post, viewerID)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	return s.loadPost(ctx, postID, viewerID)
}

// loadPost fetches one post and marks the inlined comment thread with the
// viewer's like state. The post's own IsLiked is computed in the query.
func (s *PostService) loadPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	markCommentLikes(post, viewerID)
	return post, nil
}

func markCommentLikes(post *models.Post, viewerID uint) {
	for i := range post.Comments {
		comment := &post.Comments[i]
		comment.IsLiked = likedBy(comment.Likes, viewerID)
		for j := range comment.Replies {
			comment.Replies[j].IsLiked = likedBy(comment.Replies[j].Likes, viewerID)
		}
	}
}

// SetVisibility flips a post between public and private. Only the owner can
// do this; a post owned by someone else looks like a missing post.
func (s *PostService) SetVisibility(ctx context.Context, in SetVisibilityInput) (*models.Post, error) {
	if in.Visibility != models.VisibilityPublic && in.Visibility != models.VisibilityPrivate {
		return nil, models.NewValidationError("Visibility must be 'public' or 'private'")
	}
	if err := s.postRepo.SetVisibility(ctx, in.PostID, in.UserID, in.Visibility); err != nil {
		return nil, err
	}
	return s.loadPost(ctx, in.PostID, in.UserID)
}

// PostLikesCount returns the like count for an existing post.
func (s *PostService) PostLikesCount(ctx context.Context, postID uint) (int64, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NewNotFoundError("Post", postID)
	}
	return s.likeRepo.PostLikeCount(ctx, postID)
}
