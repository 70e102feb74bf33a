package server

import (
	"cadence/internal/models"
	"cadence/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHabits handles GET /api/habits
func (s *Server) GetHabits(c *fiber.Ctx) error {
	habits, err := s.habitService.ListHabits(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"habits": habits})
}

// CreateHabit handles POST /api/habits
func (s *Server) CreateHabit(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
		Category    string `json:"category"`
		IconName    string `json:"icon_name"`
		Color       string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	habit, err := s.habitService.CreateHabit(c.Context(), service.CreateHabitInput{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		IconName:    req.IconName,
		Color:       req.Color,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(habit)
}

// GetHabit handles GET /api/habits/:id
func (s *Server) GetHabit(c *fiber.Ctx) error {
	habit, err := s.habitService.GetHabit(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(habit)
}

// GetHabitStats handles GET /api/habits/:id/stats
func (s *Server) GetHabitStats(c *fiber.Ctx) error {
	habitStats, err := s.habitService.GetStats(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(habitStats)
}

// UpdateHabit handles PUT /api/habits/:id
func (s *Server) UpdateHabit(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
		Category    string `json:"category"`
		IconName    string `json:"icon_name"`
		Color       string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	habit, err := s.habitService.UpdateHabit(c.Context(), service.UpdateHabitInput{
		UserID:      currentUserID(c),
		HabitID:     c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		IconName:    req.IconName,
		Color:       req.Color,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(habit)
}

// CompleteHabit handles POST /api/habits/:id/complete
func (s *Server) CompleteHabit(c *fiber.Ctx) error {
	var req struct {
		Date  string `json:"date"`
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	completion, err := s.habitService.Complete(c.Context(), service.CompletionInput{
		UserID:  currentUserID(c),
		HabitID: c.Params("id"),
		Date:    req.Date,
		Notes:   req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(completion)
}

// UncompleteHabit handles DELETE /api/habits/:id/complete
// The date comes from the ?date= query param or a JSON body.
func (s *Server) UncompleteHabit(c *fiber.Ctx) error {
	var req struct {
		Date string `json:"date"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}
	if req.Date == "" {
		req.Date = c.Query("date")
	}

	err := s.habitService.Uncomplete(c.Context(), service.CompletionInput{
		UserID:  currentUserID(c),
		HabitID: c.Params("id"),
		Date:    req.Date,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Completion removed"})
}
