// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFollows handles GET /api/follows (protected).
// Only the caller's own subscriptions are visible; the optional search query
// narrows by followed username.
// @Summary List subscriptions
// @Description List the authenticated user's subscriptions
// @Tags follows
// @Produce json
// @Param search query string false "Filter by followed username substring"
// @Success 200 {array} object{id=integer,user=string,following=string}
// @Router /follows [get]
func (s *Server) GetFollows(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	follows, err := s.followService.ListFollows(ctx, userID, c.Query("search"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toFollowResponses(follows))
}

// CreateFollow handles POST /api/follows (protected)
// @Summary Subscribe to an author
// @Description Subscribe the authenticated user to another author by username
// @Tags follows
// @Accept json
// @Produce json
// @Param request body object{following=string} true "Target username"
// @Success 201 {object} object{id=integer,user=string,following=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /follows [post]
func (s *Server) CreateFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Following string `json:"following"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	follow, err := s.followService.CreateFollow(ctx, service.CreateFollowInput{
		UserID:            userID,
		FollowingUsername: req.Following,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toFollowResponse(follow))
}
