package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Application ID prefixes, one per submission source
const (
	AppIDPrefixForm  = "FORM"
	AppIDPrefixExcel = "EXCEL"
)

// GenerateApplicationID builds the externally visible admission identifier:
// source prefix + millisecond timestamp + random suffix. The suffix comes
// from a UUID so two IDs minted in the same millisecond still differ.
func GenerateApplicationID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), suffix)
}

// GenerateBatchID returns the grouping token shared by every record of one
// bulk-import run.
func GenerateBatchID() string {
	return uuid.NewString()
}

// GenerateRandomString generates a random hex string of specified length
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IsValidAdmissionStatus checks if an admission status is valid
func IsValidAdmissionStatus(status string) bool {
	switch status {
	case "Pending", "Approved", "Rejected":
		return true
	}
	return false
}

// IsValidFileExtension checks if file extension is allowed
func IsValidFileExtension(filename string, allowedExtensions []string) bool {
	if filename == "" {
		return false
	}
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return false
	}
	ext := strings.ToLower(parts[len(parts)-1])
	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

// IsDigits reports whether s is non-empty and consists only of ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
