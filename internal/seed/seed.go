// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"buddyscript/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// Password assigned to every seeded account so developers can log in.
	Password string
}

// DefaultOptions is a small but representative dataset.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		PostsPerUser:    4,
		CommentsPerPost: 3,
		Password:        "password123",
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(password string, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Password:  string(hash),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for the user with a realistic created_at spread
// over the past 90 days. Roughly one post in four is private.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	visibility := models.VisibilityPublic
	if f.rand.Intn(4) == 0 {
		visibility = models.VisibilityPrivate
	}

	post := &models.Post{
		UserID:     user.ID,
		Text:       gofakeit.Paragraph(1, 3, 8, "\n"),
		Visibility: visibility,
	}
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}

	// Around half the posts carry one or two images.
	if f.rand.Intn(2) == 0 {
		n := 1 + f.rand.Intn(2)
		for i := 0; i < n; i++ {
			media := &models.PostMedia{
				PostID:   post.ID,
				URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
				Position: i,
				MimeType: "image/jpeg",
			}
			if err := f.db.Create(media).Error; err != nil {
				return nil, err
			}
		}
	}

	return post, nil
}

// CreateComment persists a comment, optionally as a reply to parent.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(10),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Run populates the database with a connected set of users, posts, comments,
// replies, and likes.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			var topLevel []*models.Comment
			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[f.rand.Intn(len(users))]
				comment, err := f.CreateComment(commenter, post, nil)
				if err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
				topLevel = append(topLevel, comment)
			}

			// A reply on some threads, plus a scattering of likes.
			if len(topLevel) > 0 && f.rand.Intn(2) == 0 {
				replier := users[f.rand.Intn(len(users))]
				if _, err := f.CreateComment(replier, post, topLevel[0]); err != nil {
					return fmt.Errorf("seed reply: %w", err)
				}
			}

			for _, liker := range users {
				if f.rand.Intn(3) != 0 {
					continue
				}
				like := &models.PostLike{PostID: post.ID, UserID: liker.ID}
				if err := db.Create(like).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users with posts, comments, and likes", len(users))
	return nil
}
