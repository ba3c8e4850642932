package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"buddyscript/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	createMediaFn   func(context.Context, *models.PostMedia) error
	getByIDFn       func(context.Context, uint, uint) (*models.Post, error)
	listFeedFn      func(context.Context, uint) ([]*models.Post, error)
	setVisibilityFn func(context.Context, uint, uint, string) error
	existsFn        func(context.Context, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) CreateMedia(ctx context.Context, media *models.PostMedia) error {
	return s.createMediaFn(ctx, media)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	return s.listFeedFn(ctx, viewerID)
}
func (s *postRepoStub) SetVisibility(ctx context.Context, postID, ownerID uint, visibility string) error {
	return s.setVisibilityFn(ctx, postID, ownerID, visibility)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		createMediaFn: func(_ context.Context, _ *models.PostMedia) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFeedFn:      func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		setVisibilityFn: func(_ context.Context, _, _ uint, _ string) error { return nil },
		existsFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	likePostFn         func(context.Context, uint, uint) error
	unlikePostFn       func(context.Context, uint, uint) error
	likeCommentFn      func(context.Context, uint, uint) error
	unlikeCommentFn    func(context.Context, uint, uint) error
	postLikeCountFn    func(context.Context, uint) (int64, error)
	commentLikeCountFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) LikePost(ctx context.Context, userID, postID uint) error {
	return s.likePostFn(ctx, userID, postID)
}
func (s *likeRepoStub) UnlikePost(ctx context.Context, userID, postID uint) error {
	return s.unlikePostFn(ctx, userID, postID)
}
func (s *likeRepoStub) LikeComment(ctx context.Context, userID, commentID uint) error {
	return s.likeCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	return s.unlikeCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) PostLikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.postLikeCountFn(ctx, postID)
}
func (s *likeRepoStub) CommentLikeCount(ctx context.Context, commentID uint) (int64, error) {
	return s.commentLikeCountFn(ctx, commentID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likePostFn:         func(_ context.Context, _, _ uint) error { return nil },
		unlikePostFn:       func(_ context.Context, _, _ uint) error { return nil },
		likeCommentFn:      func(_ context.Context, _, _ uint) error { return nil },
		unlikeCommentFn:    func(_ context.Context, _, _ uint) error { return nil },
		postLikeCountFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		commentLikeCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// uploaderStub is a stub for imagehost.Uploader.
type uploaderStub struct {
	uploadFn func(context.Context, []byte) (string, error)
}

func (s *uploaderStub) Upload(ctx context.Context, content []byte) (string, error) {
	return s.uploadFn(ctx, content)
}

func workingUploader() *uploaderStub {
	return &uploaderStub{
		uploadFn: func(_ context.Context, _ []byte) (string, error) {
			return "https://img.example.com/a.jpg", nil
		},
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopLikeRepo(), workingUploader())
	ctx := context.Background()

	t.Run("neither text nor images", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID: 1,
			Text:   strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})

	t.Run("invalid visibility", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:     1,
			Text:       "hello",
			Visibility: "friends-only",
		})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_DefaultsToPublic(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}

	svc := NewPostService(postRepo, noopLikeRepo(), workingUploader())
	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "hello"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.VisibilityPublic, created.Visibility)
}

func TestPostService_CreatePost_PartialUploadSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	uploader := &uploaderStub{
		uploadFn: func(_ context.Context, _ []byte) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("host unreachable")
			}
			return "https://img.example.com/b.jpg", nil
		},
	}

	postRepo := noopPostRepo()
	var media []*models.PostMedia
	postRepo.createMediaFn = func(_ context.Context, m *models.PostMedia) error {
		media = append(media, m)
		return nil
	}

	svc := NewPostService(postRepo, noopLikeRepo(), uploader)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1,
		Text:   "two pics",
		Images: []PostImageInput{
			{Content: []byte("first")},
			{Content: []byte("second")},
		},
	})
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, "https://img.example.com/b.jpg", media[0].URL)
	// Position reflects the input index, not the surviving order.
	assert.Equal(t, 1, media[0].Position)
}

func TestPostService_CreatePost_SurvivesTotalUploadFailure(t *testing.T) {
	t.Parallel()

	uploader := &uploaderStub{
		uploadFn: func(_ context.Context, _ []byte) (string, error) {
			return "", errors.New("host unreachable")
		},
	}

	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 3
		created = p
		return nil
	}
	var media []*models.PostMedia
	postRepo.createMediaFn = func(_ context.Context, m *models.PostMedia) error {
		media = append(media, m)
		return nil
	}

	// A text-less draft whose only upload fails still becomes a post.
	svc := NewPostService(postRepo, noopLikeRepo(), uploader)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1,
		Images: []PostImageInput{{Content: []byte("only")}},
	})
	require.NoError(t, err)
	require.NotNil(t, post)
	require.NotNil(t, created)
	assert.Empty(t, media)
}

func TestPostService_SetVisibility(t *testing.T) {
	t.Parallel()

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopLikeRepo(), workingUploader())
		_, err := svc.SetVisibility(context.Background(), SetVisibilityInput{
			UserID: 1, PostID: 1, Visibility: "hidden",
		})
		assertValidationError(t, err)
	})

	t.Run("not owner surfaces not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.setVisibilityFn = func(_ context.Context, postID, _ uint, _ string) error {
			return models.NewNotFoundError("Post", postID)
		}
		svc := NewPostService(postRepo, noopLikeRepo(), workingUploader())
		_, err := svc.SetVisibility(context.Background(), SetVisibilityInput{
			UserID: 2, PostID: 1, Visibility: models.VisibilityPrivate,
		})
		assertNotFoundError(t, err)
	})
}

func TestPostService_PostLikesCount(t *testing.T) {
	t.Parallel()

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostService(postRepo, noopLikeRepo(), workingUploader())
		_, err := svc.PostLikesCount(context.Background(), 99)
		assertNotFoundError(t, err)
	})

	t.Run("returns ledger count", func(t *testing.T) {
		t.Parallel()
		likeRepo := noopLikeRepo()
		likeRepo.postLikeCountFn = func(_ context.Context, _ uint) (int64, error) { return 5, nil }
		svc := NewPostService(noopPostRepo(), likeRepo, workingUploader())
		count, err := svc.PostLikesCount(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}
