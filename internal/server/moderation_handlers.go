package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetBlogRequests handles GET /api/requests
// @Summary List blog requests
// @Description Admins see the whole queue; authors see only their own requests.
// @Tags moderation
// @Produce json
// @Success 200 {array} models.BlogRequest
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (s *Server) GetBlogRequests(c *fiber.Ctx) error {
	requests, err := s.moderationService.List(c.UserContext(), s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requests)
}

// ApproveBlogRequest handles POST /api/requests/:id/approve
// @Summary Approve a blog request
// @Description Apply the pending change to the target blog and mark the request approved.
// @Tags moderation
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} models.BlogRequest
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/approve [post]
func (s *Server) ApproveBlogRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.moderationService.Approve(c.UserContext(), id, s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	s.invalidatePublished(c)
	return c.JSON(request)
}

// RejectBlogRequest handles POST /api/requests/:id/reject
// @Summary Reject a blog request
// @Description Mark the pending request rejected without touching the target blog.
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body object{admin_notes=string} false "Reviewer notes"
// @Success 200 {object} models.BlogRequest
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/reject [post]
func (s *Server) RejectBlogRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	// Body is optional; notes default to empty.
	_ = c.BodyParser(&req)

	request, err := s.moderationService.Reject(c.UserContext(), id, s.principal(c), req.AdminNotes)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(request)
}
