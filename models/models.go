package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Admission statuses
const (
	AdmissionPending  = "Pending"
	AdmissionApproved = "Approved"
	AdmissionRejected = "Rejected"
)

// Admission data sources
const (
	SourceForm  = "form"
	SourceExcel = "excel"
)

// Admin model for school office staff accounts
type Admin struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:50;not null;default:'admin';type:enum('owner','admin')"` // owner, admin
}

// Admission model - one application, from the public form or one bulk Excel row
type Admission struct {
	BaseModel
	ApplicationID string `json:"application_id" gorm:"size:100;not null;uniqueIndex"`
	StudentName   string `json:"student_name" gorm:"size:200;not null"`
	StudentClass  string `json:"student_class" gorm:"size:50;not null"`
	DOB           string `json:"dob" gorm:"size:50;not null"`
	Gender        string `json:"gender" gorm:"size:20;not null;type:enum('Male','Female')"` // Male, Female
	AadharNumber  string `json:"aadhar_number" gorm:"size:20;not null"`
	FatherName    string `json:"father_name" gorm:"size:200;not null"`
	MotherName    string `json:"mother_name" gorm:"size:200;not null"`
	ParentContact string `json:"parent_contact" gorm:"size:20;not null"`
	Email         string `json:"email" gorm:"size:255;not null"`
	Address       string `json:"address" gorm:"size:500;not null"`
	Status        string `json:"status" gorm:"size:50;not null;default:'Pending';type:enum('Pending','Approved','Rejected')"` // Pending, Approved, Rejected
	DataSource    string `json:"data_source" gorm:"size:20;not null;default:'form';type:enum('form','excel')"`               // form, excel
	BatchID       string `json:"batch_id,omitempty" gorm:"size:100;index"`
	RollNo        string `json:"roll_no,omitempty" gorm:"size:50"`
}

// ImportBatch records one bulk-import run for the audit trail
type ImportBatch struct {
	BaseModel
	BatchID      string `json:"batch_id" gorm:"size:100;not null;uniqueIndex"`
	FileName     string `json:"file_name" gorm:"size:255;not null"`
	TotalRows    int    `json:"total_rows" gorm:"not null"`
	SuccessCount int    `json:"success_count" gorm:"not null"`
	ErrorCount   int    `json:"error_count" gorm:"not null"`
	UploadedBy   string `json:"uploaded_by" gorm:"size:100"`
}

// Notice model for the public notice board
type Notice struct {
	BaseModel
	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text;not null"`
}

// Teacher model for the public staff roster
type Teacher struct {
	BaseModel
	Name     string `json:"name" gorm:"size:200;not null"`
	Subject  string `json:"subject" gorm:"size:200;not null"`
	ImageURL string `json:"image_url" gorm:"size:500"`
}

// Student model - the enrolled-student roster maintained by the office
type Student struct {
	BaseModel
	Name       string `json:"name" gorm:"size:200;not null"`
	Class      string `json:"class" gorm:"size:50;not null"`
	RollNo     string `json:"roll_no" gorm:"size:50"`
	FatherName string `json:"father_name" gorm:"size:200"`
	Contact    string `json:"contact" gorm:"size:20"`
}

// GalleryImage model
type GalleryImage struct {
	BaseModel
	Title       string `json:"title" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url" gorm:"type:mediumtext;not null"`
	FileName    string `json:"file_name" gorm:"size:255"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type" gorm:"size:100"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	AdminID    uint   `json:"admin_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	Admin Admin `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
