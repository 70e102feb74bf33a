package server

import (
	"github.com/gofiber/fiber/v2"
)

// ArchiveHabit handles DELETE /api/habits/:id
func (s *Server) ArchiveHabit(c *fiber.Ctx) error {
	archived, err := s.archiveService.Archive(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Habit archived",
		"deleted_habit": archived,
	})
}

// GetDeletedHabits handles GET /api/deleted-habits
func (s *Server) GetDeletedHabits(c *fiber.Ctx) error {
	deleted, err := s.archiveService.ListDeleted(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted_habits": deleted})
}

// RestoreHabit handles POST /api/deleted-habits/:id/restore
func (s *Server) RestoreHabit(c *fiber.Ctx) error {
	habit, err := s.archiveService.Restore(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Habit restored",
		"habit":   habit,
	})
}

// PurgeHabit handles DELETE /api/deleted-habits/:id
func (s *Server) PurgeHabit(c *fiber.Ctx) error {
	if err := s.archiveService.Purge(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Habit permanently deleted"})
}
