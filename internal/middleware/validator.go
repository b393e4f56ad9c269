package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Upload and input validation at the transport boundary. The engine
// itself never checks file types; everything here runs before it.

// allowedImageExtensions is the upload allow-list.
var allowedImageExtensions = map[string]bool{
	"png":   true,
	"jpg":   true,
	"jpeg":  true,
	"gif":   true,
	"bmp":   true,
	"tiff":  true,
	"dicom": true,
}

// ValidateUploadExtension checks the filename against the allow-list.
func ValidateUploadExtension(filename string) error {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return fmt.Errorf("file %q has no extension (allowed: png, jpg, jpeg, gif, bmp, tiff, dicom)", filename)
	}
	ext := strings.ToLower(filename[i+1:])
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("file extension %q is not allowed (allowed: png, jpg, jpeg, gif, bmp, tiff, dicom)", ext)
	}
	return nil
}

// SecureFilename strips directory components and dangerous characters
// from a client-supplied filename, keeping only the base name.
func SecureFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}

// SanitizeText removes null bytes and control characters from symptom
// text and trims surrounding whitespace.
func SanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	var b strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// maxSymptomTextLen bounds symptom descriptions; anything longer is a
// paste accident, not a symptom report.
const maxSymptomTextLen = 4000

// ValidateSymptomText bounds the length of the symptom description.
func ValidateSymptomText(text string) error {
	if len(text) > maxSymptomTextLen {
		return fmt.Errorf("symptom text too long (%d chars, max %d)", len(text), maxSymptomTextLen)
	}
	return nil
}

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{0,64}$`)

// ValidateUserID validates the optional user id format.
func ValidateUserID(userID string) error {
	if !userIDPattern.MatchString(userID) {
		return fmt.Errorf("invalid user id format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}
