// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Publish a new post as the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{text=string,group=integer,image=string} true "Post payload"
// @Success 201 {object} object{id=integer,author=string,text=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text     string `json:"text"`
		GroupID  *uint  `json:"group"`
		ImageURL string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toPostResponse(post))
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description List posts newest-first with limit/offset pagination; filter by group or author
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page start"
// @Param group query int false "Filter by group ID"
// @Param author query string false "Filter by author username"
// @Success 200 {object} object{count=integer,results=array}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, service.DefaultPostPageSize)

	groupID := c.QueryInt("group", 0)
	if groupID < 0 {
		groupID = 0
	}

	result, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:   page.Limit,
		Offset:  page.Offset,
		GroupID: uint(groupID),
		Author:  c.Query("author"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(postListResponse{
		Count:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		Results: toPostResponses(result.Posts),
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toPostResponse(post))
}

// UpdatePost handles PUT and PATCH /api/posts/:id (author only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text     string `json:"text"`
		GroupID  *uint  `json:"group"`
		ImageURL string `json:"image,omitempty"`
		// ClearGroup detaches the post from its group; group IDs in the
		// payload are otherwise merge-only.
		ClearGroup bool `json:"clear_group,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:     userID,
		PostID:     postID,
		Text:       req.Text,
		GroupID:    req.GroupID,
		ImageURL:   req.ImageURL,
		ClearGroup: req.ClearGroup,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toPostResponse(post))
}

// DeletePost handles DELETE /api/posts/:id (author or admin)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
