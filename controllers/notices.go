package controllers

import (
	"strings"

	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/store"

	"github.com/gofiber/fiber/v2"
)

type NoticeController struct{}

// NoticeRequest represents a notice create/update body
type NoticeRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// GetNotices returns the notice board, newest first. Never fails: when the
// database is unreachable the fallback store serves seeded defaults.
func (nc *NoticeController) GetNotices(c *fiber.Ctx) error {
	notices, mode := store.Notices.List()
	return c.JSON(fiber.Map{
		"notices": notices,
		"total":   len(notices),
		"storage": mode,
	})
}

// CreateNotice adds a notice to the board
func (nc *NoticeController) CreateNotice(c *fiber.Ctx) error {
	var req NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	notice := models.Notice{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
	}

	mode, err := store.Notices.Insert(&notice)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create notice",
		})
	}

	middleware.LogActivity(c, "CREATE", "notices", notice.ID, fiber.Map{
		"title":   notice.Title,
		"storage": mode,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Notice created successfully",
		"notice":  notice,
		"storage": mode,
	})
}

// UpdateNotice edits an existing notice
func (nc *NoticeController) UpdateNotice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notice ID",
		})
	}

	var req NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	mode, ok := store.Notices.Update(uint(id), func(n *models.Notice) {
		n.Title = req.Title
		n.Description = strings.TrimSpace(req.Description)
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notice not found",
		})
	}

	middleware.LogActivity(c, "UPDATE", "notices", uint(id), fiber.Map{
		"title":   req.Title,
		"storage": mode,
	})

	return c.JSON(fiber.Map{
		"message": "Notice updated successfully",
		"storage": mode,
	})
}

// DeleteNotice removes a notice from whichever store holds it
func (nc *NoticeController) DeleteNotice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notice ID",
		})
	}

	if !store.Notices.Delete(uint(id)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notice not found",
		})
	}

	middleware.LogActivity(c, "DELETE", "notices", uint(id), nil)

	return c.JSON(fiber.Map{
		"message": "Notice deleted successfully",
	})
}
