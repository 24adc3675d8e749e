package controllers

import (
	"strings"

	"umsjevari_go/database"
	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/services"
	"umsjevari_go/store"
	"umsjevari_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdmissionController struct {
	LineService *services.LineMessagingService
}

// AdmissionRequest represents the public admission form body
type AdmissionRequest struct {
	StudentName   string `json:"student_name" form:"student_name"`
	StudentClass  string `json:"student_class" form:"student_class"`
	DOB           string `json:"dob" form:"dob"`
	Gender        string `json:"gender" form:"gender"`
	AadharNumber  string `json:"aadhar_number" form:"aadhar_number"`
	FatherName    string `json:"father_name" form:"father_name"`
	MotherName    string `json:"mother_name" form:"mother_name"`
	ParentContact string `json:"parent_contact" form:"parent_contact"`
	Email         string `json:"email" form:"email"`
	Address       string `json:"address" form:"address"`
}

// SubmitAdmission accepts one application from the public form. The same
// field rules apply as for bulk imported rows.
func (ac *AdmissionController) SubmitAdmission(c *fiber.Ctx) error {
	var req AdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	admission := models.Admission{
		StudentName:   strings.TrimSpace(req.StudentName),
		StudentClass:  strings.TrimSpace(req.StudentClass),
		DOB:           strings.TrimSpace(req.DOB),
		Gender:        strings.TrimSpace(req.Gender),
		AadharNumber:  strings.TrimSpace(req.AadharNumber),
		FatherName:    strings.TrimSpace(req.FatherName),
		MotherName:    strings.TrimSpace(req.MotherName),
		ParentContact: strings.TrimSpace(req.ParentContact),
		Email:         strings.TrimSpace(req.Email),
		Address:       strings.TrimSpace(req.Address),
	}

	if errs := validateAdmission(&admission); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	admission.ApplicationID = utils.GenerateApplicationID(utils.AppIDPrefixForm)
	admission.Status = models.AdmissionPending
	admission.DataSource = models.SourceForm

	mode, err := store.Admissions.Insert(&admission)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save application",
		})
	}

	if ac.LineService.Enabled() {
		ac.LineService.NotifyStaffAsync("New admission application: " + admission.StudentName +
			" (class " + admission.StudentClass + "), application ID " + admission.ApplicationID)
	}

	logrus.WithFields(logrus.Fields{
		"application_id": admission.ApplicationID,
		"storage":        mode,
	}).Info("Admission application submitted")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Application submitted successfully",
		"application_id": admission.ApplicationID,
		"storage":        mode,
	})
}

// CheckStatus lets an applicant look up their application by application ID
func (ac *AdmissionController) CheckStatus(c *fiber.Ctx) error {
	var req struct {
		ApplicationID string `json:"application_id" form:"application_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	appID := strings.TrimSpace(req.ApplicationID)
	if appID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application ID is required",
		})
	}

	admission, mode, found := ac.findByApplicationID(appID)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return c.JSON(fiber.Map{
		"application_id": admission.ApplicationID,
		"student_name":   admission.StudentName,
		"student_class":  admission.StudentClass,
		"status":         admission.Status,
		"submitted_at":   admission.CreatedAt,
		"storage":        mode,
	})
}

func (ac *AdmissionController) findByApplicationID(appID string) (models.Admission, store.Mode, bool) {
	if database.Available() {
		var admission models.Admission
		if err := database.DB.Where("application_id = ?", appID).First(&admission).Error; err == nil {
			return admission, store.ModePrimary, true
		}
	}

	for _, a := range store.Admissions.FallbackStore().List() {
		if a.ApplicationID == appID {
			return a, store.ModeFallback, true
		}
	}
	return models.Admission{}, store.ModeFallback, false
}

// GetAdmissions lists applications for the admin panel with optional filters
func (ac *AdmissionController) GetAdmissions(c *fiber.Ctx) error {
	status := c.Query("status")
	source := c.Query("source")
	batchID := c.Query("batch_id")
	search := c.Query("search")

	if status != "" && !utils.IsValidAdmissionStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status filter",
		})
	}

	admissions, mode := store.Admissions.List()

	filtered := admissions[:0:0]
	for _, a := range admissions {
		if status != "" && a.Status != status {
			continue
		}
		if source != "" && a.DataSource != source {
			continue
		}
		if batchID != "" && a.BatchID != batchID {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(a.StudentName), needle) &&
				!strings.Contains(strings.ToLower(a.ApplicationID), needle) &&
				!strings.Contains(a.ParentContact, search) {
				continue
			}
		}
		filtered = append(filtered, a)
	}

	return c.JSON(fiber.Map{
		"admissions": filtered,
		"total":      len(filtered),
		"storage":    mode,
	})
}

// UpdateStatus moves an application between pending, approved and rejected
func (ac *AdmissionController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid admission ID",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !utils.IsValidAdmissionStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be one of Pending, Approved, Rejected",
		})
	}

	mode, ok := store.Admissions.Update(uint(id), func(a *models.Admission) {
		a.Status = req.Status
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Admission not found",
		})
	}

	middleware.LogActivity(c, "UPDATE", "admissions", uint(id), fiber.Map{
		"status":  req.Status,
		"storage": mode,
	})

	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"status":  req.Status,
		"storage": mode,
	})
}

// DeleteAdmission removes one application
func (ac *AdmissionController) DeleteAdmission(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid admission ID",
		})
	}

	if !store.Admissions.Delete(uint(id)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Admission not found",
		})
	}

	middleware.LogActivity(c, "DELETE", "admissions", uint(id), nil)

	return c.JSON(fiber.Map{
		"message": "Admission deleted successfully",
	})
}

// GetAdmissionStats summarises applications by status and source
func (ac *AdmissionController) GetAdmissionStats(c *fiber.Ctx) error {
	admissions, mode := store.Admissions.List()

	stats := fiber.Map{
		"total":    len(admissions),
		"pending":  0,
		"approved": 0,
		"rejected": 0,
		"by_form":  0,
		"by_excel": 0,
	}
	for _, a := range admissions {
		switch a.Status {
		case models.AdmissionPending:
			stats["pending"] = stats["pending"].(int) + 1
		case models.AdmissionApproved:
			stats["approved"] = stats["approved"].(int) + 1
		case models.AdmissionRejected:
			stats["rejected"] = stats["rejected"].(int) + 1
		}
		switch a.DataSource {
		case models.SourceForm:
			stats["by_form"] = stats["by_form"].(int) + 1
		case models.SourceExcel:
			stats["by_excel"] = stats["by_excel"].(int) + 1
		}
	}

	return c.JSON(fiber.Map{
		"stats":   stats,
		"storage": mode,
	})
}
