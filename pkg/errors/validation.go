package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// spriteNameRegex matches names that are safe as asset-catalog file stems.
var spriteNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateSpriteName validates a sprite name before it is used to build file names.
// Sprite names become `<name>.imageset/<name>@2x.png`, so the rules are strict:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, underscore and dash only, starting with a letter or digit
func ValidateSpriteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "sprite name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "sprite name too long (max 128 characters)")
	}

	if !spriteNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid sprite name: %q (use letters, digits, '_' or '-')", name)
	}

	return nil
}

// ValidatePath validates an input or output path supplied on the command line
// or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// SanitizeSpriteName derives a sprite name from a file stem, replacing any
// character ValidateSpriteName would reject with '_'.
func SanitizeSpriteName(stem string) string {
	var b strings.Builder
	for i, r := range stem {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case (r == '_' || r == '-') && i > 0:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.TrimLeft(b.String(), "_-")
	if len(name) > 128 {
		name = name[:128]
	}
	return name
}
