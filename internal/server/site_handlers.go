package server

import (
	"strings"
	"time"

	"aurum/internal/cache"
	"aurum/internal/models"

	"github.com/gofiber/fiber/v2"
)

const statisticsCacheTTL = 10 * time.Minute

// Subscribe handles POST /api/subscribe
// @Summary Subscribe to the newsletter
// @Tags site
// @Accept json
// @Produce json
// @Param request body object{first_name=string,last_name=string,email=string,accepted_terms=bool} true "Subscription form"
// @Success 200 {object} object{message=string}
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /subscribe [post]
func (s *Server) Subscribe(c *fiber.Ctx) error {
	var req struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Email         string `json:"email"`
		AcceptedTerms *bool  `json:"accepted_terms"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.AcceptedTerms == nil ||
		email == "" || !strings.Contains(email, "@") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("All fields are required"))
	}
	if !*req.AcceptedTerms {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You must accept the terms and conditions"))
	}

	existing, err := s.subscriberRepo.GetByEmail(c.UserContext(), email)
	if err != nil {
		return respondServiceError(c, err)
	}
	// Resubscribing is not an error.
	if existing != nil {
		return c.JSON(fiber.Map{"message": "You are already subscribed!"})
	}

	sub := &models.Subscriber{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         email,
		AcceptedTerms: true,
	}
	if err := s.subscriberRepo.Create(c.UserContext(), sub); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Thank you for subscribing!"})
}

// GetSubscribers handles GET /api/admin/subscribers
// @Summary List newsletter subscribers
// @Tags site
// @Produce json
// @Success 200 {array} models.Subscriber
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/subscribers [get]
func (s *Server) GetSubscribers(c *fiber.Ctx) error {
	subs, err := s.subscriberRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subs)
}

// SubmitContactMessage handles POST /api/contact
// @Summary Submit a contact form message
// @Tags site
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,subject=string,message=string} true "Contact message"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /contact [post]
func (s *Server) SubmitContactMessage(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("All fields are required"))
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.contactRepo.Create(c.UserContext(), msg); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message received"})
}

// GetContactMessages handles GET /api/admin/messages
// @Summary List contact form messages
// @Tags site
// @Produce json
// @Success 200 {array} models.ContactMessage
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/messages [get]
func (s *Server) GetContactMessages(c *fiber.Ctx) error {
	msgs, err := s.contactRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}

// GetStatistics handles GET /api/statistics
// @Summary Marketing page statistics
// @Description Counters shown on the public site, cached for a few minutes.
// @Tags site
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /statistics [get]
func (s *Server) GetStatistics(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var stats map[string]int64
	err := cache.CacheAside(ctx, s.redis, cache.StatisticsKey, &stats, statisticsCacheTTL, func() error {
		var err error
		stats, err = s.statisticRepo.All(ctx)
		return err
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}

// SetStatistic handles PUT /api/admin/statistics
// @Summary Set a marketing statistic
// @Tags site
// @Accept json
// @Produce json
// @Param request body object{name=string,value=int} true "Counter name and value"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/statistics [put]
func (s *Server) SetStatistic(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Value int64  `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("name is required"))
	}

	if err := s.statisticRepo.Set(c.UserContext(), strings.TrimSpace(req.Name), req.Value); err != nil {
		return respondServiceError(c, err)
	}

	cache.Invalidate(c.UserContext(), s.redis, cache.StatisticsKey)
	return c.JSON(fiber.Map{"message": "Statistic updated"})
}
