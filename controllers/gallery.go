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

type GalleryController struct {
	Storage *storage.StorageService
}

// GetGallery returns gallery images, newest first. Degrades to seeded
// defaults when the database is unreachable.
func (gc *GalleryController) GetGallery(c *fiber.Ctx) error {
	images, mode := store.Gallery.List()
	return c.JSON(fiber.Map{
		"images":  images,
		"total":   len(images),
		"storage": mode,
	})
}

// UploadImage accepts a multipart image plus title/description and adds it
// to the gallery.
func (gc *GalleryController) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image uploaded",
		})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = file.Filename
	}

	imageURL, err := gc.Storage.UploadImage(file, "gallery")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to store image: " + err.Error(),
		})
	}

	image := models.GalleryImage{
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		ImageURL:    imageURL,
		FileName:    file.Filename,
		FileSize:    file.Size,
		MimeType:    file.Header.Get("Content-Type"),
	}

	mode, err := store.Gallery.Insert(&image)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image",
		})
	}

	middleware.LogActivity(c, "CREATE", "gallery", image.ID, fiber.Map{
		"title":   image.Title,
		"file":    image.FileName,
		"storage": mode,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"image":   image,
		"storage": mode,
	})
}

// UpdateImage edits the title and description of a gallery image
func (gc *GalleryController) UpdateImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
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

	mode, ok := store.Gallery.Update(uint(id), func(img *models.GalleryImage) {
		img.Title = req.Title
		img.Description = strings.TrimSpace(req.Description)
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	middleware.LogActivity(c, "UPDATE", "gallery", uint(id), fiber.Map{
		"title":   req.Title,
		"storage": mode,
	})

	return c.JSON(fiber.Map{
		"message": "Image updated successfully",
		"storage": mode,
	})
}

// DeleteImage removes a gallery image and its stored file
func (gc *GalleryController) DeleteImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	image, _, found := store.Gallery.Get(uint(id))
	if !store.Gallery.Delete(uint(id)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if found && image.ImageURL != "" {
		if err := gc.Storage.DeleteImage(image.ImageURL); err != nil {
			logrus.WithError(err).Warn("Failed to delete gallery image from storage")
		}
	}

	middleware.LogActivity(c, "DELETE", "gallery", uint(id), nil)

	return c.JSON(fiber.Map{
		"message": "Image deleted successfully",
	})
}
