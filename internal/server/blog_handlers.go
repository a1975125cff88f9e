package server

import (
	"time"

	"aurum/internal/cache"
	"aurum/internal/models"
	"aurum/internal/service"

	"github.com/gofiber/fiber/v2"
)

const publishedCacheTTL = 5 * time.Minute

// GetPublishedBlogs handles GET /api/blogs/published
// @Summary List published blogs
// @Description List live blog posts for the public site, cached for a few minutes.
// @Tags blogs
// @Produce json
// @Success 200 {array} models.Blog
// @Router /blogs/published [get]
func (s *Server) GetPublishedBlogs(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var blogs []models.Blog
	err := cache.CacheAside(ctx, s.redis, cache.PublishedBlogsKey, &blogs, publishedCacheTTL, func() error {
		var err error
		blogs, err = s.blogService.ListPublished(ctx)
		return err
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(blogs)
}

// GetBlogs handles GET /api/blogs
// @Summary List blogs
// @Description List all blog posts, optionally filtered by status.
// @Tags blogs
// @Produce json
// @Param status query string false "Filter by status (draft or published)"
// @Success 200 {array} models.Blog
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs [get]
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	var status *models.BlogStatus
	if q := c.Query("status"); q != "" {
		st := models.BlogStatus(q)
		if st != models.BlogStatusDraft && st != models.BlogStatusPublished {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("status must be draft or published"))
		}
		status = &st
	}

	blogs, err := s.blogService.List(c.UserContext(), status)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blogs)
}

// GetBlog handles GET /api/blogs/:id
// @Summary Get a blog post
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} models.Blog
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [get]
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// CreateBlog handles POST /api/blogs
// @Summary Create a blog draft
// @Description Create a new draft owned by the caller. Content goes live only after approval.
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body service.CreateBlogInput true "Blog content"
// @Success 201 {object} models.Blog
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs [post]
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req service.CreateBlogInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Create(c.UserContext(), req, s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlog handles PUT /api/blogs/:id
// @Summary Update a blog post
// @Description Admins and draft owners edit directly. Owners of published posts must set submit_for_approval, which queues an update request; a draft edit with the flag also queues a publish request.
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body service.UpdateBlogInput true "Fields to change"
// @Success 200 {object} models.Blog
// @Success 202 {object} models.BlogRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [put]
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateBlogInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, request, err := s.blogService.Update(c.UserContext(), id, req, s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if request != nil {
		if blog != nil {
			// Draft edit that also queued a publish request.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"blog": blog, "request": request})
		}
		return c.Status(fiber.StatusAccepted).JSON(request)
	}

	s.invalidatePublished(c)
	return c.JSON(blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
// @Summary Delete a blog post
// @Description Admins delete anything; owners only their drafts. Published posts are removed via propose-delete and approval.
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [delete]
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.Delete(c.UserContext(), id, s.principal(c)); err != nil {
		return respondServiceError(c, err)
	}

	s.invalidatePublished(c)
	return c.JSON(fiber.Map{"message": "Blog deleted"})
}

// ProposeDeleteBlog handles POST /api/blogs/:id/propose-delete
// @Summary Propose deleting a blog post
// @Description Queue a delete request for admin review. Owners only.
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 202 {object} models.BlogRequest
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/propose-delete [post]
func (s *Server) ProposeDeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.blogService.ProposeDelete(c.UserContext(), id, s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(request)
}

// SubmitBlogForApproval handles POST /api/blogs/:id/submit
// @Summary Submit a draft for publication
// @Description Queue a draft for admin review as a create request.
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 202 {object} models.BlogRequest
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/submit [post]
func (s *Server) SubmitBlogForApproval(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.blogService.SubmitForApproval(c.UserContext(), id, s.principal(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(request)
}

// invalidatePublished drops the cached public blog list after any direct
// mutation that could change it.
func (s *Server) invalidatePublished(c *fiber.Ctx) {
	cache.Invalidate(c.UserContext(), s.redis, cache.PublishedBlogsKey)
}
