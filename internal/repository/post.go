package repository

import (
	"context"
	"errors"

	"buddyscript/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CreateMedia(ctx context.Context, media *models.PostMedia) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error)
	SetVisibility(ctx context.Context, postID, ownerID uint, visibility string) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) CreateMedia(ctx context.Context, media *models.PostMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
// comments_count includes replies; likes_count and is_liked read the like ledger.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) as is_liked", viewerID)
	}

	return db.Select(selectQuery + ", false as is_liked")
}

// applyPostPreloads eagerly loads the relations every post payload carries.
// Comments come inlined as the top-level thread with one level of replies,
// mirroring the shape of the comments listing.
func (r *postRepository) applyPostPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Likes.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_id IS NULL").Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Likes.User").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Replies.Author").
		Preload("Comments.Replies.Likes.User")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostPreloads(
		r.applyPostDetails(r.db.WithContext(ctx), viewerID),
	).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// ListFeed returns every post visible to the viewer (public posts plus the
// viewer's own), newest first with id as a deterministic tie-break.
func (r *postRepository) ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostPreloads(
		r.applyPostDetails(r.db.WithContext(ctx), viewerID),
	).
		Where("visibility = ? OR user_id = ?", models.VisibilityPublic, viewerID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SetVisibility updates the flag scoped by owner in a single statement.
// Zero rows affected means "no such post owned by ownerID": the caller
// cannot tell a missing post from another user's post.
func (r *postRepository) SetVisibility(ctx context.Context, postID, ownerID uint, visibility string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, ownerID).
		Update("visibility", visibility)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
