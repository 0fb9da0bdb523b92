package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateScreenName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "jack", false},
		{"valid with underscore", "chirp_dev", false},
		{"valid with at", "@jack", false},
		{"valid max length", "abcdefghijklmno", false},

		{"empty", "", true},
		{"only at", "@", true},
		{"too long", "abcdefghijklmnop", true},
		{"dash", "my-name", true},
		{"space", "my name", true},
		{"path traversal", "../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScreenName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScreenName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("ValidateScreenName(%q) should be a validation error, got %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"small", "20", false},
		{"beyond float precision", "1050118621198921728", false},

		{"empty", "", true},
		{"negative", "-1", true},
		{"letters", "12a", true},
		{"too long", "123456789012345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMediaPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(file, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid file", file, ""},
		{"empty", "", ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "missing.png"), ErrCodeFileNotFound},
		{"directory", dir, ErrCodeInvalidPath},
		{"control char", "photo\x01.png", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateMediaPath(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid https", "https://api.twitter.com/1.1/", false},
		{"valid http", "http://127.0.0.1:8080/", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "api.twitter.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
