package controllers

import (
	"errors"
	"strings"
	"testing"

	"umsjevari_go/models"
	"umsjevari_go/utils"
)

func validImportRecord() models.Admission {
	return models.Admission{
		StudentName:   "Asha Pawar",
		StudentClass:  "6",
		DOB:           "2014-06-15",
		Gender:        "Female",
		AadharNumber:  "123456789012",
		FatherName:    "Ramesh Pawar",
		MotherName:    "Sunita Pawar",
		ParentContact: "9876543210",
		Email:         "ramesh.pawar@example.com",
		Address:       "Jevari, Solapur",
	}
}

func okPersist(*models.Admission) error { return nil }

func TestProcessAdmissionRowsPartialFailure(t *testing.T) {
	rows := []models.Admission{validImportRecord(), validImportRecord(), validImportRecord()}
	rows[1].AadharNumber = "12345678901" // 11 digits

	report := processAdmissionRows(rows, "batch-1", okPersist)

	if report.Total != 3 {
		t.Errorf("expected total 3, got %d", report.Total)
	}
	if len(report.Successes) != 2 {
		t.Errorf("expected 2 successes, got %d", len(report.Successes))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error row, got %d", len(report.Errors))
	}

	bad := report.Errors[0]
	if bad.Row != 3 {
		t.Errorf("expected error on sheet row 3, got %d", bad.Row)
	}
	if len(bad.Errors) != 1 || !strings.Contains(bad.Errors[0], "12 digits") {
		t.Errorf("expected a 12 digits message, got %v", bad.Errors)
	}
}

func TestProcessAdmissionRowsAccumulatesAllViolations(t *testing.T) {
	report := processAdmissionRows([]models.Admission{{}}, "batch-1", okPersist)

	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error row, got %d", len(report.Errors))
	}

	want := []string{
		"Student name is required",
		"Class is required",
		"Date of birth is required",
		"Valid gender is required",
		"Aadhar number is required",
		"Father name is required",
		"Mother name is required",
		"Parent contact is required",
		"Email is required",
		"Address is required",
	}
	got := report.Errors[0].Errors
	if len(got) != len(want) {
		t.Fatalf("expected %d violations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("violation %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestProcessAdmissionRowsPersistFailureIsRowScoped(t *testing.T) {
	rows := []models.Admission{validImportRecord(), validImportRecord(), validImportRecord()}

	calls := 0
	persist := func(a *models.Admission) error {
		calls++
		if calls == 2 {
			return errors.New("Duplicate entry '123456789012'")
		}
		return nil
	}

	report := processAdmissionRows(rows, "batch-1", persist)

	if len(report.Successes) != 2 {
		t.Errorf("expected 2 successes, got %d", len(report.Successes))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error row, got %d", len(report.Errors))
	}
	if report.Errors[0].Row != 3 {
		t.Errorf("expected failure on row 3, got %d", report.Errors[0].Row)
	}
	if !strings.HasPrefix(report.Errors[0].Errors[0], "Database error:") {
		t.Errorf("expected Database error prefix, got %q", report.Errors[0].Errors[0])
	}
	if calls != 3 {
		t.Errorf("expected persistence attempted for all 3 valid rows, got %d", calls)
	}
}

func TestProcessAdmissionRowsStampsRecords(t *testing.T) {
	var persisted []models.Admission
	persist := func(a *models.Admission) error {
		persisted = append(persisted, *a)
		return nil
	}

	report := processAdmissionRows([]models.Admission{validImportRecord(), validImportRecord()}, "batch-42", persist)

	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(persisted))
	}

	seen := make(map[string]bool)
	for _, rec := range persisted {
		if !strings.HasPrefix(rec.ApplicationID, utils.AppIDPrefixExcel) {
			t.Errorf("expected EXCEL application ID prefix, got %q", rec.ApplicationID)
		}
		if seen[rec.ApplicationID] {
			t.Errorf("duplicate application ID %q", rec.ApplicationID)
		}
		seen[rec.ApplicationID] = true

		if rec.Status != models.AdmissionPending {
			t.Errorf("expected Pending status, got %q", rec.Status)
		}
		if rec.DataSource != models.SourceExcel {
			t.Errorf("expected excel data source, got %q", rec.DataSource)
		}
		if rec.BatchID != "batch-42" {
			t.Errorf("expected batch id batch-42, got %q", rec.BatchID)
		}
	}

	if report.Message != "Bulk upload completed. Success: 2, Failed: 0" {
		t.Errorf("unexpected summary message %q", report.Message)
	}
}

func TestProcessAdmissionRowsInvalidRowNeverPersisted(t *testing.T) {
	bad := validImportRecord()
	bad.Email = "no-at-sign"

	persist := func(a *models.Admission) error {
		t.Fatalf("persist called for invalid row %+v", a)
		return nil
	}

	report := processAdmissionRows([]models.Admission{bad}, "batch-1", persist)
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error row, got %d", len(report.Errors))
	}
	if report.Errors[0].Errors[0] != "Valid email is required" {
		t.Errorf("unexpected violation %v", report.Errors[0].Errors)
	}
}

func TestValidateAdmission(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Admission)
		want   string
	}{
		{"short aadhar", func(a *models.Admission) { a.AadharNumber = "1234" }, "Aadhar number must be 12 digits"},
		{"non numeric aadhar", func(a *models.Admission) { a.AadharNumber = "12345678901a" }, "Aadhar number must be 12 digits"},
		{"short contact", func(a *models.Admission) { a.ParentContact = "98765" }, "Parent contact must be 10 digits"},
		{"bad gender", func(a *models.Admission) { a.Gender = "Other" }, "Valid gender is required"},
		{"email without at", func(a *models.Admission) { a.Email = "mail.example.com" }, "Valid email is required"},
		{"missing address", func(a *models.Admission) { a.Address = "" }, "Address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validImportRecord()
			tt.mutate(&rec)
			errs := validateAdmission(&rec)
			if len(errs) != 1 || errs[0] != tt.want {
				t.Errorf("expected [%q], got %v", tt.want, errs)
			}
		})
	}

	t.Run("valid record", func(t *testing.T) {
		rec := validImportRecord()
		if errs := validateAdmission(&rec); len(errs) != 0 {
			t.Errorf("expected no violations, got %v", errs)
		}
	})
}

func TestBuildColumnIndex(t *testing.T) {
	t.Run("named headers in any order", func(t *testing.T) {
		header := []string{"Email", "Student Name", "Class", "DOB", "Gender", "Aadhar Number", "Father Name", "Mother Name", "Parent Contact", "Address"}
		index, headerless, missing := buildColumnIndex(header)
		if headerless {
			t.Error("expected header row to be recognized")
		}
		if len(missing) != 0 {
			t.Errorf("expected no missing columns, got %v", missing)
		}
		if index["email"] != 0 || index["student_name"] != 1 {
			t.Errorf("unexpected index %v", index)
		}
	})

	t.Run("missing required header", func(t *testing.T) {
		header := []string{"student_name", "class", "dob"}
		_, headerless, missing := buildColumnIndex(header)
		if headerless {
			t.Error("expected header row to be recognized")
		}
		if len(missing) == 0 {
			t.Fatal("expected missing columns")
		}
		for _, m := range missing {
			if m == "student_name" || m == "student_class" || m == "dob" {
				t.Errorf("column %q should not be reported missing", m)
			}
		}
	})

	t.Run("headerless falls back to positions", func(t *testing.T) {
		index, headerless, missing := buildColumnIndex([]string{"Asha", "6", "2014-06-15"})
		if !headerless {
			t.Error("expected positional fallback")
		}
		if len(missing) != 0 {
			t.Errorf("expected no missing columns, got %v", missing)
		}
		if index["student_name"] != 0 || index["address"] != 9 {
			t.Errorf("unexpected positional index %v", index)
		}
	})
}

func TestMapAdmissionRows(t *testing.T) {
	rows := [][]string{
		{"student_name", "student_class", "dob", "gender", "aadhar_number", "father_name", "mother_name", "parent_contact", "email", "address"},
		{"Asha Pawar", "6", "2014-06-15", "Female", "123456789012", "Ramesh", "Sunita", "9876543210", "a@example.com", "Jevari"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"Vikram Jadhav", "7", "2013-01-20", "Male", "210987654321", "Suresh", "Lata", "9123456780", "b@example.com", "Jevari"},
	}

	records, missing := mapAdmissionRows(rows)
	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
	if len(records) != 2 {
		t.Fatalf("expected empty row skipped, got %d records", len(records))
	}
	if records[0].StudentName != "Asha Pawar" || records[1].StudentName != "Vikram Jadhav" {
		t.Errorf("unexpected mapping %+v", records)
	}
	if records[1].Gender != "Male" || records[1].ParentContact != "9123456780" {
		t.Errorf("unexpected mapping for second record %+v", records[1])
	}
}
