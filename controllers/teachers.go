package controllers

import (
	"strings"

	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/storage"
	"umsjevari_go/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TeacherController struct {
	Storage *storage.StorageService
}

// TeacherRequest represents a teacher create/update body
type TeacherRequest struct {
	Name     string `json:"name" form:"name"`
	Subject  string `json:"subject" form:"subject"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// GetTeachers returns the faculty list, newest first. Degrades to seeded
// defaults when the database is unreachable.
func (tc *TeacherController) GetTeachers(c *fiber.Ctx) error {
	teachers, mode := store.Teachers.List()
	return c.JSON(fiber.Map{
		"teachers": teachers,
		"total":    len(teachers),
		"storage":  mode,
	})
}

// CreateTeacher adds a faculty member. The portrait can arrive either as a
// ready-made image_url or as an uploaded "image" file.
func (tc *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Name == "" || req.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and subject are required",
		})
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if file, err := c.FormFile("image"); err == nil {
		uploaded, upErr := tc.Storage.UploadImage(file, "teachers")
		if upErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to store image: " + upErr.Error(),
			})
		}
		imageURL = uploaded
	}

	teacher := models.Teacher{
		Name:     req.Name,
		Subject:  req.Subject,
		ImageURL: imageURL,
	}

	mode, err := store.Teachers.Insert(&teacher)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create teacher",
		})
	}

	middleware.LogActivity(c, "CREATE", "teachers", teacher.ID, fiber.Map{
		"name":    teacher.Name,
		"storage": mode,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
		"storage": mode,
	})
}

// UpdateTeacher edits a faculty member
func (tc *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid teacher ID",
		})
	}

	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Name == "" || req.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and subject are required",
		})
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if file, err := c.FormFile("image"); err == nil {
		uploaded, upErr := tc.Storage.UploadImage(file, "teachers")
		if upErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to store image: " + upErr.Error(),
			})
		}
		imageURL = uploaded
	}

	mode, ok := store.Teachers.Update(uint(id), func(t *models.Teacher) {
		t.Name = req.Name
		t.Subject = req.Subject
		if imageURL != "" {
			t.ImageURL = imageURL
		}
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Teacher not found",
		})
	}

	middleware.LogActivity(c, "UPDATE", "teachers", uint(id), fiber.Map{
		"name":    req.Name,
		"storage": mode,
	})

	return c.JSON(fiber.Map{
		"message": "Teacher updated successfully",
		"storage": mode,
	})
}

// DeleteTeacher removes a faculty member and their uploaded portrait
func (tc *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid teacher ID",
		})
	}

	teacher, _, found := store.Teachers.Get(uint(id))
	if !store.Teachers.Delete(uint(id)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Teacher not found",
		})
	}

	if found && teacher.ImageURL != "" {
		if err := tc.Storage.DeleteImage(teacher.ImageURL); err != nil {
			logrus.WithError(err).Warn("Failed to delete teacher image from storage")
		}
	}

	middleware.LogActivity(c, "DELETE", "teachers", uint(id), nil)

	return c.JSON(fiber.Map{
		"message": "Teacher deleted successfully",
	})
}
