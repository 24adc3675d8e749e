package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"umsjevari_go/database"
	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/services"
	ws "umsjevari_go/services/websocket"
	"umsjevari_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type AdmissionImportController struct {
	LineService *services.LineMessagingService
	Hub         *ws.Hub
}

// importColumns is the canonical column order, which doubles as the
// positional fallback when a sheet carries no recognizable header.
var importColumns = []string{
	"student_name",
	"student_class",
	"dob",
	"gender",
	"aadhar_number",
	"father_name",
	"mother_name",
	"parent_contact",
	"email",
	"address",
}

// headerAliases maps normalized header cell text to canonical column names,
// so exported sheets with human-readable headers still map correctly.
var headerAliases = map[string]string{
	"student_name":   "student_name",
	"name":           "student_name",
	"student name":   "student_name",
	"student_class":  "student_class",
	"class":          "student_class",
	"student class":  "student_class",
	"dob":            "dob",
	"date of birth":  "dob",
	"date_of_birth":  "dob",
	"gender":         "gender",
	"aadhar_number":  "aadhar_number",
	"aadhar":         "aadhar_number",
	"aadhar number":  "aadhar_number",
	"father_name":    "father_name",
	"father name":    "father_name",
	"mother_name":    "mother_name",
	"mother name":    "mother_name",
	"parent_contact": "parent_contact",
	"parent contact": "parent_contact",
	"contact":        "parent_contact",
	"email":          "email",
	"address":        "address",
}

// RowError reports everything wrong with a single sheet row. Row numbers are
// 1-indexed spreadsheet rows, so the first data row is row 2.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// RowSuccess reports one persisted row
type RowSuccess struct {
	Row           int    `json:"row"`
	ApplicationID string `json:"application_id"`
}

// ImportReport summarises one bulk import run
type ImportReport struct {
	BatchID   string       `json:"batch_id"`
	FileName  string       `json:"file_name,omitempty"`
	Total     int          `json:"total"`
	Successes []RowSuccess `json:"success"`
	Errors    []RowError   `json:"errors"`
	Message   string       `json:"message"`
}

// ImportAdmissions ingests a spreadsheet of admission applications. Rows are
// validated and written one by one: a bad row never blocks the rows after it,
// and rows stored before a mid-batch failure stay stored.
func (ic *AdmissionImportController) ImportAdmissions(c *fiber.Ctx) error {
	if !database.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Bulk import requires the database, which is currently unreachable",
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
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The file is empty",
		})
	}

	records, missing := mapAdmissionRows(rows)
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           "Missing required columns: " + strings.Join(missing, ", "),
			"missing_columns": missing,
		})
	}

	batchID := utils.GenerateBatchID()
	report := processAdmissionRows(records, batchID, func(a *models.Admission) error {
		return database.DB.Create(a).Error
	})
	report.FileName = fileHeader.Filename

	claims, _ := middleware.GetCurrentClaims(c)
	uploadedBy := ""
	if claims != nil {
		uploadedBy = claims.Username
	}

	batch := models.ImportBatch{
		BatchID:      batchID,
		FileName:     fileHeader.Filename,
		TotalRows:    report.Total,
		SuccessCount: len(report.Successes),
		ErrorCount:   len(report.Errors),
		UploadedBy:   uploadedBy,
	}
	if err := database.DB.Create(&batch).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record import batch audit row")
	}

	middleware.LogActivity(c, "CREATE", "admission_imports", batch.ID, fiber.Map{
		"batch_id": batchID,
		"file":     fileHeader.Filename,
		"total":    report.Total,
		"success":  len(report.Successes),
		"failed":   len(report.Errors),
	})

	if ic.Hub != nil {
		ic.Hub.BroadcastEvent("admission_import_completed", fiber.Map{
			"batch_id": batchID,
			"total":    report.Total,
			"success":  len(report.Successes),
			"failed":   len(report.Errors),
		})
	}
	if ic.LineService.Enabled() {
		ic.LineService.NotifyStaffAsync(fmt.Sprintf(
			"Admission import finished: %d rows, %d stored, %d failed",
			report.Total, len(report.Successes), len(report.Errors)))
	}

	return c.JSON(fiber.Map{
		"message": report.Message,
		"results": report,
	})
}

// DownloadTemplate serves an empty spreadsheet with the expected header row
func (ic *AdmissionImportController) DownloadTemplate(c *fiber.Ctx) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range importColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build template",
			})
		}
		f.SetCellValue(sheet, cell, col)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build template",
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="admission_import_template.xlsx"`)
	return c.Send(buf.Bytes())
}

// GetImportBatches lists past import runs for the admin panel
func (ic *AdmissionImportController) GetImportBatches(c *fiber.Ctx) error {
	if !database.Available() {
		return c.JSON(fiber.Map{"batches": []models.ImportBatch{}, "total": 0})
	}

	var batches []models.ImportBatch
	if err := database.DB.Order("created_at DESC").Find(&batches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch import batches",
		})
	}

	return c.JSON(fiber.Map{
		"batches": batches,
		"total":   len(batches),
	})
}

// readSheetRows parses an uploaded spreadsheet into raw string rows,
// header included.
func readSheetRows(fileHeader *multipart.FileHeader) ([][]string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return readCSVRows(src)
	}
	return readXLSXRows(src)
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %v", err)
	}
	return rows, nil
}

// buildColumnIndex maps canonical column names to cell positions using the
// header row. When no header cell is recognized the sheet is assumed
// headerless and the canonical column order applies positionally.
func buildColumnIndex(header []string) (index map[string]int, headerless bool, missing []string) {
	index = make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := index[canonical]; !seen {
				index[canonical] = i
			}
		}
	}

	if len(index) == 0 {
		for i, col := range importColumns {
			index[col] = i
		}
		return index, true, nil
	}

	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, false, missing
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// mapAdmissionRows turns raw sheet rows into admission records. The first
// row is the header unless the sheet is headerless, in which case every row
// is data. Empty trailing rows are skipped.
func mapAdmissionRows(rows [][]string) ([]models.Admission, []string) {
	index, headerless, missing := buildColumnIndex(rows[0])
	if len(missing) > 0 {
		return nil, missing
	}

	data := rows
	if !headerless {
		data = rows[1:]
	}

	var records []models.Admission
	for _, row := range data {
		if isRowEmpty(row) {
			continue
		}
		records = append(records, models.Admission{
			StudentName:   cellValue(row, index["student_name"]),
			StudentClass:  cellValue(row, index["student_class"]),
			DOB:           cellValue(row, index["dob"]),
			Gender:        cellValue(row, index["gender"]),
			AadharNumber:  cellValue(row, index["aadhar_number"]),
			FatherName:    cellValue(row, index["father_name"]),
			MotherName:    cellValue(row, index["mother_name"]),
			ParentContact: cellValue(row, index["parent_contact"]),
			Email:         cellValue(row, index["email"]),
			Address:       cellValue(row, index["address"]),
		})
	}
	return records, nil
}

// validateAdmission checks the ten field rules in a fixed order and returns
// every violation found, not just the first.
func validateAdmission(a *models.Admission) []string {
	var errs []string

	if a.StudentName == "" {
		errs = append(errs, "Student name is required")
	}
	if a.StudentClass == "" {
		errs = append(errs, "Class is required")
	}
	if a.DOB == "" {
		errs = append(errs, "Date of birth is required")
	}
	if a.Gender != "Male" && a.Gender != "Female" {
		errs = append(errs, "Valid gender is required")
	}
	if a.AadharNumber == "" {
		errs = append(errs, "Aadhar number is required")
	} else if len(a.AadharNumber) != 12 || !utils.IsDigits(a.AadharNumber) {
		errs = append(errs, "Aadhar number must be 12 digits")
	}
	if a.FatherName == "" {
		errs = append(errs, "Father name is required")
	}
	if a.MotherName == "" {
		errs = append(errs, "Mother name is required")
	}
	if a.ParentContact == "" {
		errs = append(errs, "Parent contact is required")
	} else if len(a.ParentContact) != 10 || !utils.IsDigits(a.ParentContact) {
		errs = append(errs, "Parent contact must be 10 digits")
	}
	if a.Email == "" {
		errs = append(errs, "Email is required")
	} else if !strings.Contains(a.Email, "@") {
		errs = append(errs, "Valid email is required")
	}
	if a.Address == "" {
		errs = append(errs, "Address is required")
	}

	return errs
}

// processAdmissionRows runs the import over already-mapped records. Rows are
// processed strictly in order; each valid row gets its own application ID and
// its own persistence attempt, and a persistence failure is reported against
// that row alone with a "Database error:" message. There is no batch
// transaction: rows stored before a failure stay stored.
func processAdmissionRows(records []models.Admission, batchID string, persist func(*models.Admission) error) ImportReport {
	report := ImportReport{
		BatchID: batchID,
		Total:   len(records),
	}

	for i := range records {
		rowNum := i + 2 // spreadsheet row number: 1-indexed plus header

		rec := records[i]
		if errs := validateAdmission(&rec); len(errs) > 0 {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Errors: errs})
			continue
		}

		rec.ApplicationID = utils.GenerateApplicationID(utils.AppIDPrefixExcel)
		rec.Status = models.AdmissionPending
		rec.DataSource = models.SourceExcel
		rec.BatchID = batchID

		if err := persist(&rec); err != nil {
			report.Errors = append(report.Errors, RowError{
				Row:    rowNum,
				Errors: []string{fmt.Sprintf("Database error: %v", err)},
			})
			continue
		}

		report.Successes = append(report.Successes, RowSuccess{
			Row:           rowNum,
			ApplicationID: rec.ApplicationID,
		})
	}

	report.Message = fmt.Sprintf("Bulk upload completed. Success: %d, Failed: %d",
		len(report.Successes), len(report.Errors))
	return report
}
