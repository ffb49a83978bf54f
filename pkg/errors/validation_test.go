package errors

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "walking", false},
		{"valid with hyphen", "night-walks", false},
		{"valid multi segment", "on-looking-at-maps", false},
		{"valid with digits", "field-notes-2024", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"uppercase", "NightWalks", true},
		{"leading hyphen", "-walks", true},
		{"trailing hyphen", "walks-", true},
		{"doubled hyphen", "night--walks", true},
		{"underscore", "night_walks", true},
		{"path traversal", "../etc/passwd", true},
		{"spaces", "night walks", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSlug) {
				t.Errorf("ValidateSlug(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateManifestFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid essays.toml", "essays.toml", false},
		{"valid collages.toml", "collages.toml", false},

		{"empty", "", true},
		{"with path /", "path/to/file", true},
		{"with path \\", "path\\to\\file", true},
		{"hidden file", ".hidden", true},
		{"hidden file long", ".secret.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "collage/hero.png", false},
		{"valid nested", "assets/collage/supports/ticket.png", false},
		{"valid filename only", "hero.png", false},
		{"valid with dots", "v1.2.3/strip.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidSlug,
		ErrCodeInvalidSize,
		ErrCodeInvalidManifest,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeEssayNotFound,
		ErrCodeFileNotFound,
		ErrCodeCompose,
		ErrCodeEncode,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
