package server

import (
	"io"
	"mime/multipart"

	"buddyscript/internal/models"
	"buddyscript/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	posts, err := s.postService.ListFeed(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// CreatePost handles POST /feed/post. The request is a multipart form with
// optional text, optional visibility, and zero or more image files under the
// "images" field.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	text := c.FormValue("text")
	visibility := c.FormValue("visibility")

	var images []service.PostImageInput
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["images"] {
			content, readErr := readFormFile(file)
			if readErr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Unable to read uploaded file"))
			}
			images = append(images, service.PostImageInput{
				Content:  content,
				MimeType: file.Header.Get("Content-Type"),
			})
		}
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     userID,
		Text:       text,
		Visibility: visibility,
		Images:     images,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created",
		"post":    post,
	})
}

// SetPostPrivate handles PUT /feed/post/:id/private
func (s *Server) SetPostPrivate(c *fiber.Ctx) error {
	return s.setPostVisibility(c, models.VisibilityPrivate)
}

// SetPostPublic handles PUT /feed/post/:id/public
func (s *Server) SetPostPublic(c *fiber.Ctx) error {
	return s.setPostVisibility(c, models.VisibilityPublic)
}

func (s *Server) setPostVisibility(c *fiber.Ctx, visibility string) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	post, err := s.postService.SetVisibility(c.UserContext(), service.SetVisibilityInput{
		UserID:     userID,
		PostID:     postID,
		Visibility: visibility,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post is now " + visibility,
		"post":    post,
	})
}

// GetPostLikes handles GET /feed/post/:id/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.postService.PostLikesCount(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"likesCount": count,
	})
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return io.ReadAll(src)
}
