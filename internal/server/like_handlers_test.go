package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"buddyscript/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostHandler(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(s)

	alice := createTestUser(t, s, "alice@example.com")
	cookie := sessionCookie(t, s, alice.ID)

	post := &models.Post{UserID: alice.ID, Text: "hi", Visibility: models.VisibilityPublic}
	require.NoError(t, s.db.Create(post).Error)

	do := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	likePath := "/feed/post/" + itoa(post.ID) + "/like"

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, likePath))
	// Liking twice conflicts and leaves the count at one.
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, likePath))

	var count int64
	require.NoError(t, s.db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, http.StatusOK, do(http.MethodDelete, likePath))
	// Unliking again fails loudly.
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, likePath))

	// Missing post is a 404, not a silent no-op.
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/feed/post/9999/like"))
}

func TestLikeCommentHandler(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(s)

	alice := createTestUser(t, s, "alice@example.com")
	cookie := sessionCookie(t, s, alice.ID)

	post := &models.Post{UserID: alice.ID, Text: "hi", Visibility: models.VisibilityPublic}
	require.NoError(t, s.db.Create(post).Error)
	comment := &models.Comment{PostID: post.ID, UserID: alice.ID, Text: "hello"}
	require.NoError(t, s.db.Create(comment).Error)

	do := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	likePath := "/feed/comment/" + itoa(comment.ID) + "/like"

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, likePath))
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, likePath))
	assert.Equal(t, http.StatusOK, do(http.MethodDelete, likePath))
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, likePath))
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/feed/comment/9999/like"))
}
