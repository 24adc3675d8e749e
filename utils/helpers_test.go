package utils

import (
	"strings"
	"testing"
)

func TestGenerateApplicationID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{name: "form prefix", prefix: AppIDPrefixForm},
		{name: "excel prefix", prefix: AppIDPrefixExcel},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			id := GenerateApplicationID(tc.prefix)
			if !strings.HasPrefix(id, tc.prefix) {
				t.Fatalf("expected prefix %q, got %q", tc.prefix, id)
			}
			if len(id) <= len(tc.prefix) {
				t.Fatalf("id has no body: %q", id)
			}
		})
	}
}

func TestGenerateApplicationIDDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateApplicationID(AppIDPrefixForm)
		if seen[id] {
			t.Fatalf("duplicate application id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 16 {
		t.Fatalf("expected 16 hex chars, got %d (%q)", len(s), s)
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123456789012", true},
		{"", false},
		{"12a4", false},
		{" 123", false},
		{"0000000000", true},
	}
	for _, tc := range tests {
		if got := IsDigits(tc.input); got != tc.want {
			t.Errorf("IsDigits(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsValidAdmissionStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Rejected"} {
		if !IsValidAdmissionStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"pending", "Waitlisted", ""} {
		if IsValidAdmissionStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestIsValidFileExtension(t *testing.T) {
	allowed := []string{"jpg", "png"}
	if !IsValidFileExtension("photo.JPG", allowed) {
		t.Error("case-insensitive match failed")
	}
	if IsValidFileExtension("notes.txt", allowed) {
		t.Error("disallowed extension accepted")
	}
	if IsValidFileExtension("noext", allowed) {
		t.Error("filename without extension accepted")
	}
}
