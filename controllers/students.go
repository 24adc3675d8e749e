package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"umsjevari_go/database"
	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/store"
	"umsjevari_go/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct{}

// RosterEntry is one row of the merged roster view: enrolled students from
// the students table plus every admission application, normalized to the same
// shape. Admission-backed entries carry a synthetic "admission-<app id>" ID.
type RosterEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Class         string `json:"class"`
	RollNo        string `json:"roll_no"`
	FatherName    string `json:"father_name"`
	Contact       string `json:"contact"`
	Status        string `json:"status,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
}

// GetStudents returns the merged roster of enrolled students and admission
// applications.
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	var roster []RosterEntry

	if database.Available() {
		var students []models.Student
		if err := database.DB.Order("class, roll_no").Find(&students).Error; err == nil {
			for _, s := range students {
				roster = append(roster, RosterEntry{
					ID:         strconv.FormatUint(uint64(s.ID), 10),
					Name:       s.Name,
					Class:      s.Class,
					RollNo:     s.RollNo,
					FatherName: s.FatherName,
					Contact:    s.Contact,
				})
			}
		}
	}

	admissions, mode := store.Admissions.List()
	for _, a := range admissions {
		rollNo := a.RollNo
		if rollNo == "" {
			rollNo = "-"
		}
		roster = append(roster, RosterEntry{
			ID:            "admission-" + a.ApplicationID,
			Name:          a.StudentName,
			Class:         a.StudentClass,
			RollNo:        rollNo,
			FatherName:    a.FatherName,
			Contact:       a.ParentContact,
			Status:        a.Status,
			ApplicationID: a.ApplicationID,
		})
	}

	return c.JSON(fiber.Map{
		"students": roster,
		"total":    len(roster),
		"storage":  mode,
	})
}

// UpdateRollNumber assigns a roll number to either an enrolled student or an
// admission-backed roster entry.
func (sc *StudentController) UpdateRollNumber(c *fiber.Ctx) error {
	var req struct {
		ID     string `json:"id"`
		RollNo string `json:"roll_no"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return sc.applyRoll(c, strings.TrimSpace(req.ID), strings.TrimSpace(req.RollNo))
}

// UpdateRollNumberByPath is the path-parameter variant of UpdateRollNumber
func (sc *StudentController) UpdateRollNumberByPath(c *fiber.Ctx) error {
	var req struct {
		RollNo string `json:"roll_no"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return sc.applyRoll(c, c.Params("id"), strings.TrimSpace(req.RollNo))
}

func (sc *StudentController) applyRoll(c *fiber.Ctx, entryID, rollNo string) error {
	if entryID == "" || rollNo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID and roll number are required",
		})
	}

	if appID, isAdmission := strings.CutPrefix(entryID, "admission-"); isAdmission {
		if appID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid admission ID format",
			})
		}
		return sc.updateAdmissionRoll(c, appID, rollNo)
	}

	if !database.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Roster updates require the database, which is currently unreachable",
		})
	}

	id, err := strconv.ParseUint(entryID, 10, 32)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	result := database.DB.Model(&models.Student{}).Where("id = ?", uint(id)).Update("roll_no", rollNo)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update roll number",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	middleware.LogActivity(c, "UPDATE", "students", uint(id), fiber.Map{
		"roll_no": rollNo,
	})

	return c.JSON(fiber.Map{
		"message": "Roll number updated successfully",
	})
}

func (sc *StudentController) updateAdmissionRoll(c *fiber.Ctx, appID, rollNo string) error {
	if database.Available() {
		result := database.DB.Model(&models.Admission{}).
			Where("application_id = ?", appID).
			Update("roll_no", rollNo)
		if result.Error == nil && result.RowsAffected > 0 {
			middleware.LogActivity(c, "UPDATE", "admissions", 0, fiber.Map{
				"application_id": appID,
				"roll_no":        rollNo,
			})
			return c.JSON(fiber.Map{"message": "Roll number updated successfully"})
		}
	}

	for _, a := range store.Admissions.FallbackStore().List() {
		if a.ApplicationID == appID {
			store.Admissions.FallbackStore().Update(a.ID, func(rec *models.Admission) {
				rec.RollNo = rollNo
			})
			return c.JSON(fiber.Map{"message": "Roll number updated successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Student not found or no changes made",
	})
}

// ImportStudents ingests an enrolled-student roster spreadsheet. Unlike the
// admission import there is no per-field contract beyond name and class.
func (sc *StudentController) ImportStudents(c *fiber.Ctx) error {
	if !database.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Roster import requires the database, which is currently unreachable",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	if !utils.IsValidFileExtension(fileHeader.Filename, []string{"xlsx", "xls", "csv"}) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload an Excel file (.xlsx or .xls) or CSV",
		})
	}

	rows, err := readSheetRows(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to parse file: %v", err),
		})
	}
	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The file has no data rows",
		})
	}

	// Columns: name, class, roll_no, father_name, contact. Header row skipped.
	var successCount int
	var rowErrors []RowError
	for i, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowNum := i + 2

		student := models.Student{
			Name:       cellValue(row, 0),
			Class:      cellValue(row, 1),
			RollNo:     cellValue(row, 2),
			FatherName: cellValue(row, 3),
			Contact:    cellValue(row, 4),
		}

		var errs []string
		if student.Name == "" {
			errs = append(errs, "Student name is required")
		}
		if student.Class == "" {
			errs = append(errs, "Class is required")
		}
		if len(errs) > 0 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Errors: errs})
			continue
		}

		if err := database.DB.Create(&student).Error; err != nil {
			rowErrors = append(rowErrors, RowError{
				Row:    rowNum,
				Errors: []string{fmt.Sprintf("Database error: %v", err)},
			})
			continue
		}
		successCount++
	}

	middleware.LogActivity(c, "CREATE", "students", 0, fiber.Map{
		"file":    fileHeader.Filename,
		"success": successCount,
		"failed":  len(rowErrors),
	})

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Roster upload completed. Success: %d, Failed: %d", successCount, len(rowErrors)),
		"success": successCount,
		"errors":  rowErrors,
	})
}

// DeleteStudent removes one enrolled student from the roster
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	if !database.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Roster updates require the database, which is currently unreachable",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	result := database.DB.Delete(&models.Student{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	middleware.LogActivity(c, "DELETE", "students", uint(id), nil)

	return c.JSON(fiber.Map{
		"message": "Student deleted successfully",
	})
}
