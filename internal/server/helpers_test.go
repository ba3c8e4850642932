package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	"buddyscript/internal/config"
	"buddyscript/internal/database"
	"buddyscript/internal/models"
	"buddyscript/internal/repository"
	"buddyscript/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubUploader satisfies imagehost.Uploader without network access.
type stubUploader struct {
	uploadFn func(context.Context, []byte) (string, error)
}

func (s *stubUploader) Upload(ctx context.Context, content []byte) (string, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, content)
	}
	return "https://img.example.com/stub.jpg", nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret-for-handler-tests-0123456789",
		SessionCookie: "buddyscript_session",
		Port:          "0",
		Env:           "test",
	}
}

// newTestServer builds a Server over an in-memory SQLite database with a
// stubbed image uploader and no Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	uploader := &stubUploader{}

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
	s.postService = service.NewPostService(postRepo, likeRepo, uploader)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.likeService = service.NewLikeService(likeRepo, postRepo, commentRepo)
	return s
}

func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func createTestUser(t *testing.T, s *Server, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// sessionCookie issues a real session token for the user.
func sessionCookie(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: s.config.SessionCookie, Value: token}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}
