package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUploadExtension(t *testing.T) {
	for _, name := range []string{"scan.png", "xray.JPG", "photo.jpeg", "anim.gif", "old.bmp", "slide.tiff", "study.dicom"} {
		assert.NoError(t, ValidateUploadExtension(name), name)
	}
	for _, name := range []string{"notes.txt", "report.pdf", "binary.exe", "noextension", "trailing."} {
		assert.Error(t, ValidateUploadExtension(name), name)
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"scan.png", "scan.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\evil.png`, "evil.png"},
		{"my scan (1).png", "my_scan__1_.png"},
		{"...", "upload"},
		{"", "upload"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecureFilename(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "fever and chills", SanitizeText("  fever and chills \x00"))
	assert.Equal(t, "line1\nline2", SanitizeText("line1\nline2"))
	assert.Equal(t, "", SanitizeText("\x01\x02\x03"))
}

func TestValidateSymptomText(t *testing.T) {
	assert.NoError(t, ValidateSymptomText("I have a headache"))
	assert.Error(t, ValidateSymptomText(strings.Repeat("a", 4001)))
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID(""))
	assert.NoError(t, ValidateUserID("user_42-a"))
	assert.Error(t, ValidateUserID("user with spaces"))
	assert.Error(t, ValidateUserID(strings.Repeat("x", 65)))
}
