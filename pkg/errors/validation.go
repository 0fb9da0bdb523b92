package errors

import (
	"os"
	"regexp"
	"strings"
	"unicode"
)

// screenNameRegex matches account handles: 1-15 letters, digits or underscores.
var screenNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// ValidateScreenName validates an account handle. A single leading "@" is
// accepted and ignored.
func ValidateScreenName(name string) error {
	name = strings.TrimPrefix(name, "@")
	if name == "" {
		return New(ErrCodeInvalidInput, "screen name cannot be empty")
	}
	if !screenNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid screen name: %q", name)
	}
	return nil
}

// ValidateID validates a numeric object identifier such as a status or user ID.
// IDs are handled as strings so 64-bit values never lose precision.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 20 {
		return New(ErrCodeInvalidInput, "id too long: %q", id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "id must be numeric: %q", id)
		}
	}
	return nil
}

// ValidateMediaPath validates a local file path for upload.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The file must exist, be a regular file and be readable
func ValidateMediaPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "media path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "media path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Wrap(ErrCodeFileNotFound, err, "media file not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot stat media file: %s", path)
	}
	if !info.Mode().IsRegular() {
		return New(ErrCodeInvalidPath, "media path is not a regular file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "media file is not readable: %s", path)
	}
	return f.Close()
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme: %q", rawURL)
	}

	return nil
}
